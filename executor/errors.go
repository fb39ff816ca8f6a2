package executor

import "fmt"

// ConfigurationError marks a fatal configuration problem: an unsupported
// engine type or a malformed connection target. It is never retried.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ConnectionError marks a failed network or auth handshake while opening a
// connection. It fails the current job only; the agent keeps polling.
type ConnectionError struct {
	Engine string
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s (%s) failed: %v", e.Target, e.Engine, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError marks a statement rejected by the engine after a successful
// connection.
type QueryError struct {
	Engine string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed on %s: %v", e.Engine, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
