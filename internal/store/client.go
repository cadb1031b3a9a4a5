package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"

	"github.com/dkhanna/txnsight/internal/logger"
	"github.com/dkhanna/txnsight/internal/pipeline"
)

const (
	runsTable    = "runs"
	recordsTable = "records"

	dateFormat = "2006-01-02"

	// maxErrorMessageLen caps what we store for a failed run.
	maxErrorMessageLen = 2000
)

// Config identifies where the sink writes.
type Config struct {
	ProjectID string
	DatasetID string
}

// Client wraps a BigQuery client scoped to one project/dataset.
type Client struct {
	bq  *bigquery.Client
	cfg Config
}

// NewClient creates a sink client. The caller owns Close.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	bq, err := bigquery.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("store.NewClient: bigquery client: %w", err)
	}
	return &Client{bq: bq, cfg: cfg}, nil
}

func (c *Client) Close() error {
	return c.bq.Close()
}

// StartAnalysisRun inserts a runs row with status=RUNNING.
func (c *Client) StartAnalysisRun(ctx context.Context, runID, extractorType string) error {
	q := c.bq.Query(fmt.Sprintf(`
		INSERT %s.%s (run_id, started_ts, extractor_type, status)
		VALUES (@run_id, @started_ts, @extractor_type, @status)
	`, c.cfg.DatasetID, runsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "run_id", Value: runID},
		{Name: "started_ts", Value: time.Now()},
		{Name: "extractor_type", Value: extractorType},
		{Name: "status", Value: "RUNNING"},
	}

	if err := c.runQuery(ctx, q); err != nil {
		return fmt.Errorf("StartAnalysisRun: %w", err)
	}
	return nil
}

// MarkAnalysisRunSucceeded updates the runs row to status=SUCCESS and stores
// the run's summary figures.
func (c *Client) MarkAnalysisRunSucceeded(ctx context.Context, runID string, res *pipeline.Result) error {
	q := c.bq.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = "",
		    candidate_lines = @candidate_lines,
		    record_count = @record_count,
		    total_spent = @total_spent,
		    total_income = @total_income,
		    failed_count = @failed_count
		WHERE run_id = @run_id
	`, c.cfg.DatasetID, runsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: "SUCCESS"},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "candidate_lines", Value: int64(res.CandidateLines)},
		{Name: "record_count", Value: int64(len(res.Records))},
		{Name: "total_spent", Value: res.Summary.TotalSpent},
		{Name: "total_income", Value: res.Summary.TotalIncome},
		{Name: "failed_count", Value: int64(res.Summary.FailedCount)},
		{Name: "run_id", Value: runID},
	}

	if err := c.runQuery(ctx, q); err != nil {
		return fmt.Errorf("MarkAnalysisRunSucceeded: %w", err)
	}
	return nil
}

// MarkAnalysisRunFailed updates the runs row to status=FAILED. Best-effort:
// failures here are logged, not returned, so they never mask the original
// run error.
func (c *Client) MarkAnalysisRunFailed(ctx context.Context, runID string, runErr error) {
	log := logger.FromContext(ctx)

	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
		if len(errMsg) > maxErrorMessageLen {
			errMsg = errMsg[:maxErrorMessageLen]
		}
	}

	q := c.bq.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = @error_message
		WHERE run_id = @run_id
	`, c.cfg.DatasetID, runsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: "FAILED"},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "error_message", Value: errMsg},
		{Name: "run_id", Value: runID},
	}

	if err := c.runQuery(ctx, q); err != nil {
		log.Error().Err(err).Str("run_id", runID).Msg("marking analysis run failed")
	}
}

// InsertRecords streams a batch of extracted records into analysis.records.
func (c *Client) InsertRecords(ctx context.Context, runID string, records []pipeline.Transaction) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]*RecordRow, 0, len(records))
	now := time.Now()
	for _, rec := range records {
		recordDate, err := time.Parse(dateFormat, rec.Date)
		if err != nil {
			return fmt.Errorf("InsertRecords: record %s: invalid date %q: %w", rec.ID, rec.Date, err)
		}
		rows = append(rows, &RecordRow{
			RecordID:     rec.ID,
			RunID:        runID,
			RecordDate:   civil.DateOf(recordDate),
			Amount:       rec.Amount,
			Merchant:     rec.Merchant,
			Category:     rec.Category,
			BankName:     rec.BankName,
			PaymentMode:  rec.PaymentMode,
			Direction:    string(rec.Type),
			Status:       string(rec.Status),
			OriginalText: rec.OriginalText,
			CreatedTS:    now,
		})
	}

	inserter := c.bq.Dataset(c.cfg.DatasetID).Table(recordsTable).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("InsertRecords: inserting rows: %w", err)
	}
	return nil
}

// ListRecentRuns returns the most recent analysis runs, newest first.
func (c *Client) ListRecentRuns(ctx context.Context, limit int) ([]*AnalysisRunRow, error) {
	if limit <= 0 {
		limit = 20
	}

	q := c.bq.Query(fmt.Sprintf(`
		SELECT run_id, started_ts, finished_ts, extractor_type, status,
		       error_message, candidate_lines, record_count,
		       total_spent, total_income, failed_count
		FROM %s.%s
		ORDER BY started_ts DESC
		LIMIT @limit
	`, c.cfg.DatasetID, runsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "limit", Value: int64(limit)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListRecentRuns: running query: %w", err)
	}

	var runs []*AnalysisRunRow
	for {
		var row AnalysisRunRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListRecentRuns: reading row: %w", err)
		}
		runs = append(runs, &row)
	}

	return runs, nil
}

func (c *Client) runQuery(ctx context.Context, q *bigquery.Query) error {
	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("job error: %w", err)
	}
	return nil
}
