package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLoggerInitializes(t *testing.T) {
	l := GetLogger()
	assert.NotNil(t, l)

	// Repeated calls return the same instance.
	assert.Same(t, l, GetLogger())
}

func TestSyncDoesNotPanic(t *testing.T) {
	GetLogger()
	assert.NotPanics(t, Sync)
}
