// Package compare reconciles two query result sets into matched and
// mismatched row counts with a bounded sample of differences.
package compare

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dbrecon/dbrecon/executor"
	"github.com/dbrecon/dbrecon/logger"
)

// ErrNoCommonColumns is returned when the source and target result sets
// share no column names. It fails the request and is never retried.
var ErrNoCommonColumns = errors.New("no common columns between source and target result sets")

// QueryFunc executes one statement against a configured endpoint.
type QueryFunc func(ctx context.Context, cfg executor.ConnectionConfig, statement string) (*executor.ResultSet, error)

// Engine runs comparisons. The query function is swappable for tests.
type Engine struct {
	execute QueryFunc
	logger  *zap.Logger
}

// NewEngine returns an Engine backed by the connection executor.
func NewEngine() *Engine {
	return &Engine{execute: executor.ExecuteQuery, logger: logger.GetLogger()}
}

// NewEngineWithExecutor returns an Engine that executes queries through fn.
func NewEngineWithExecutor(fn QueryFunc) *Engine {
	return &Engine{execute: fn, logger: logger.GetLogger()}
}

// Compare executes both queries and reconciles the result sets on their
// common columns. The two fingerprint maps are built independently and are
// read-only once built.
func (e *Engine) Compare(ctx context.Context, req ComparisonRequest) (*ComparisonResult, error) {
	startTime := time.Now()

	var (
		wg        sync.WaitGroup
		source    *executor.ResultSet
		target    *executor.ResultSet
		sourceErr error
		targetErr error
	)

	// The two sides execute independently; neither assumes the other's
	// column order.
	wg.Add(2)
	go func() {
		defer wg.Done()
		source, sourceErr = e.execute(ctx, req.Source, req.SourceQuery)
	}()
	go func() {
		defer wg.Done()
		target, targetErr = e.execute(ctx, req.Target, req.TargetQuery)
	}()
	wg.Wait()

	if sourceErr != nil {
		return nil, fmt.Errorf("source query failed: %w", sourceErr)
	}
	if targetErr != nil {
		return nil, fmt.Errorf("target query failed: %w", targetErr)
	}

	common := commonColumns(source.Fields, target.Fields)
	if len(common) == 0 {
		return nil, ErrNoCommonColumns
	}
	compareCols := selectCompareColumns(req.KeyColumns, common)

	sourceIndex := buildFingerprintIndex(source.Rows, compareCols)
	targetIndex := buildFingerprintIndex(target.Rows, compareCols)

	summary := Summary{
		SourceRowCount: source.RowCount,
		TargetRowCount: target.RowCount,
	}
	samples := make([]SampleMismatch, 0, maxSampleMismatches)

	for _, fp := range sourceIndex.order {
		if _, ok := targetIndex.rows[fp]; ok {
			summary.MatchedRows++
			continue
		}
		summary.MismatchedRows++
		summary.SourceOnlyRows++
		if len(samples) < maxSampleMismatches {
			samples = append(samples, SampleMismatch{Type: MismatchSourceOnly, Row: sourceIndex.rows[fp]})
		}
	}
	for _, fp := range targetIndex.order {
		if _, ok := sourceIndex.rows[fp]; ok {
			continue
		}
		summary.TargetOnlyRows++
		if len(samples) < maxSampleMismatches {
			samples = append(samples, SampleMismatch{Type: MismatchTargetOnly, Row: targetIndex.rows[fp]})
		}
	}

	summary.ComparisonStatus = StatusPassed
	if summary.MismatchedRows > 0 || summary.TargetOnlyRows > 0 {
		summary.ComparisonStatus = StatusFailed
	}

	e.logger.Info("Comparison completed",
		zap.Int("sourceRows", summary.SourceRowCount),
		zap.Int("targetRows", summary.TargetRowCount),
		zap.Int("matched", summary.MatchedRows),
		zap.Int("mismatched", summary.MismatchedRows),
		zap.String("status", string(summary.ComparisonStatus)))

	return &ComparisonResult{
		Summary:          summary,
		SampleMismatches: samples,
		ExecutionTimeMs:  time.Since(startTime).Milliseconds(),
	}, nil
}

// commonColumns intersects the two field lists case-sensitively, keeping
// source order.
func commonColumns(sourceFields, targetFields []string) []string {
	targetSet := make(map[string]struct{}, len(targetFields))
	for _, f := range targetFields {
		targetSet[f] = struct{}{}
	}
	common := make([]string, 0, len(sourceFields))
	for _, f := range sourceFields {
		if _, ok := targetSet[f]; ok {
			common = append(common, f)
		}
	}
	return common
}

// selectCompareColumns restricts matching to the caller's key columns when
// supplied, keeping only those present on both sides.
func selectCompareColumns(keyColumns, common []string) []string {
	if len(keyColumns) == 0 {
		return common
	}
	commonSet := make(map[string]struct{}, len(common))
	for _, c := range common {
		commonSet[c] = struct{}{}
	}
	cols := make([]string, 0, len(keyColumns))
	for _, k := range keyColumns {
		if _, ok := commonSet[k]; ok {
			cols = append(cols, k)
		}
	}
	return cols
}

// fingerprintIndex maps fingerprints to rows, remembering first-seen order
// so sampling stays deterministic. On duplicate fingerprints within one side
// the last row wins; duplicates are not otherwise reported.
type fingerprintIndex struct {
	rows  map[string]executor.Row
	order []string
}

func buildFingerprintIndex(rows []executor.Row, compareCols []string) *fingerprintIndex {
	idx := &fingerprintIndex{rows: make(map[string]executor.Row, len(rows))}
	for _, row := range rows {
		fp := fingerprint(row, compareCols)
		if _, seen := idx.rows[fp]; !seen {
			idx.order = append(idx.order, fp)
		}
		idx.rows[fp] = row
	}
	return idx
}

// fingerprint joins the compare-column values with a pipe, mapping nil to
// the literal token NULL. It is an in-process equality key only; a value
// containing the delimiter can collide with a distinct tuple, which is a
// known limitation kept for compatibility.
func fingerprint(row executor.Row, compareCols []string) string {
	parts := make([]string, len(compareCols))
	for i, col := range compareCols {
		v, ok := row[col]
		if !ok || v == nil {
			parts[i] = "NULL"
			continue
		}
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, "|")
}
