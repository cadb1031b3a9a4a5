// Package store persists pipeline output to BigQuery. Persistence across
// runs is a caller concern; the pipeline core never touches this package.
package store

import (
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
)

// RecordRow is one extracted transaction in the analysis.records table.
type RecordRow struct {
	RecordID string `bigquery:"record_id"` // REQUIRED
	RunID    string `bigquery:"run_id"`    // REQUIRED

	RecordDate civil.Date `bigquery:"record_date"` // processing date

	Amount       float64 `bigquery:"amount"`
	Merchant     string  `bigquery:"merchant"`
	Category     string  `bigquery:"category"`
	BankName     string  `bigquery:"bank_name"`
	PaymentMode  string  `bigquery:"payment_mode"`
	Direction    string  `bigquery:"direction"` // debit / credit
	Status       string  `bigquery:"status"`
	OriginalText string  `bigquery:"original_text"`

	CreatedTS time.Time `bigquery:"created_ts"`
}

// AnalysisRunRow tracks one pipeline run in the analysis.runs table.
type AnalysisRunRow struct {
	RunID string `bigquery:"run_id"`

	StartedAt  time.Time              `bigquery:"started_ts"`
	FinishedAt bigquery.NullTimestamp `bigquery:"finished_ts"`

	ExtractorType string `bigquery:"extractor_type"` // GEMINI_CHAT or REGEX

	Status       string `bigquery:"status"` // RUNNING / SUCCESS / FAILED
	ErrorMessage string `bigquery:"error_message"`

	CandidateLines bigquery.NullInt64 `bigquery:"candidate_lines"`
	RecordCount    bigquery.NullInt64 `bigquery:"record_count"`

	TotalSpent  bigquery.NullFloat64 `bigquery:"total_spent"`
	TotalIncome bigquery.NullFloat64 `bigquery:"total_income"`
	FailedCount bigquery.NullInt64   `bigquery:"failed_count"`
}
