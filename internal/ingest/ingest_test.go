package ingest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkhanna/txnsight/internal/ingest"
	"github.com/dkhanna/txnsight/internal/pipeline"
)

// MockTextSource is a mock implementation of TextSource for testing.
type MockTextSource struct {
	FetchTextFunc func(ctx context.Context, uri string) (string, error)
}

func (m *MockTextSource) FetchText(ctx context.Context, uri string) (string, error) {
	if m.FetchTextFunc != nil {
		return m.FetchTextFunc(ctx, uri)
	}
	return "", nil
}

// MockRecordSink is a mock implementation of RecordSink for testing.
type MockRecordSink struct {
	StartAnalysisRunFunc         func(ctx context.Context, runID, extractorType string) error
	InsertRecordsFunc            func(ctx context.Context, runID string, records []pipeline.Transaction) error
	MarkAnalysisRunSucceededFunc func(ctx context.Context, runID string, res *pipeline.Result) error
	MarkAnalysisRunFailedFunc    func(ctx context.Context, runID string, runErr error)

	calls []string
}

func (m *MockRecordSink) StartAnalysisRun(ctx context.Context, runID, extractorType string) error {
	m.calls = append(m.calls, "start")
	if m.StartAnalysisRunFunc != nil {
		return m.StartAnalysisRunFunc(ctx, runID, extractorType)
	}
	return nil
}

func (m *MockRecordSink) InsertRecords(ctx context.Context, runID string, records []pipeline.Transaction) error {
	m.calls = append(m.calls, "insert")
	if m.InsertRecordsFunc != nil {
		return m.InsertRecordsFunc(ctx, runID, records)
	}
	return nil
}

func (m *MockRecordSink) MarkAnalysisRunSucceeded(ctx context.Context, runID string, res *pipeline.Result) error {
	m.calls = append(m.calls, "succeeded")
	if m.MarkAnalysisRunSucceededFunc != nil {
		return m.MarkAnalysisRunSucceededFunc(ctx, runID, res)
	}
	return nil
}

func (m *MockRecordSink) MarkAnalysisRunFailed(ctx context.Context, runID string, runErr error) {
	m.calls = append(m.calls, "failed")
	if m.MarkAnalysisRunFailedFunc != nil {
		m.MarkAnalysisRunFailedFunc(ctx, runID, runErr)
	}
}

func TestRun_Success(t *testing.T) {
	src := &MockTextSource{
		FetchTextFunc: func(ctx context.Context, uri string) (string, error) {
			assert.Equal(t, "gs://bucket/dump.txt", uri)
			return "Rs. 540.00 debited from HDFC Bank A/c XX8921 via UPI to Zomato Pvt Ltd on 12-05-24.", nil
		},
	}

	var insertedRunID string
	var inserted []pipeline.Transaction
	sink := &MockRecordSink{
		InsertRecordsFunc: func(ctx context.Context, runID string, records []pipeline.Transaction) error {
			insertedRunID = runID
			inserted = records
			return nil
		},
	}

	res, err := ingest.Run(context.Background(), "gs://bucket/dump.txt", src, sink, pipeline.Options{})
	require.NoError(t, err)

	require.Len(t, inserted, 1)
	assert.Equal(t, "Zomato Pvt Ltd", inserted[0].Merchant)
	assert.Equal(t, res.RunID, insertedRunID, "records are persisted under the tracked run")
	assert.Equal(t, []string{"start", "insert", "succeeded"}, sink.calls)
}

func TestRun_FetchFailureAbortsBeforeRunTracking(t *testing.T) {
	src := &MockTextSource{
		FetchTextFunc: func(ctx context.Context, uri string) (string, error) {
			return "", errors.New("object not found")
		},
	}
	sink := &MockRecordSink{}

	_, err := ingest.Run(context.Background(), "gs://bucket/missing.txt", src, sink, pipeline.Options{})
	require.Error(t, err)
	assert.Empty(t, sink.calls, "nothing is tracked when input cannot be read at all")
}

func TestRun_InsertFailureMarksRunFailed(t *testing.T) {
	src := &MockTextSource{
		FetchTextFunc: func(ctx context.Context, uri string) (string, error) {
			return "Rs. 120.00 paid to Swiggy via UPI", nil
		},
	}

	var failedErr error
	sink := &MockRecordSink{
		InsertRecordsFunc: func(ctx context.Context, runID string, records []pipeline.Transaction) error {
			return errors.New("table unavailable")
		},
		MarkAnalysisRunFailedFunc: func(ctx context.Context, runID string, runErr error) {
			failedErr = runErr
		},
	}

	_, err := ingest.Run(context.Background(), "gs://bucket/dump.txt", src, sink, pipeline.Options{})
	require.Error(t, err)

	assert.Equal(t, []string{"start", "insert", "failed"}, sink.calls)
	require.Error(t, failedErr)
	assert.Contains(t, failedErr.Error(), "table unavailable")
}

func TestNewIngestJob_ExtractorType(t *testing.T) {
	src := &MockTextSource{}

	var gotType string
	sink := &MockRecordSink{
		StartAnalysisRunFunc: func(ctx context.Context, runID, extractorType string) error {
			gotType = extractorType
			return nil
		},
	}

	_, err := ingest.Run(context.Background(), "gs://bucket/empty.txt", src, sink, pipeline.Options{})
	require.NoError(t, err)
	assert.Equal(t, "REGEX", gotType)
}
