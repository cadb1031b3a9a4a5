package pipeline

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TypeDebit  TransactionType = "debit"
	TypeCredit TransactionType = "credit"
)

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	StatusSuccess   TransactionStatus = "success"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
	StatusPending   TransactionStatus = "pending"
)

// Transaction is one structured record extracted from a single notification
// line. Records are immutable once produced; the summary only reads them.
type Transaction struct {
	ID           string            `json:"id"`
	OriginalText string            `json:"originalText"`
	Date         string            `json:"date"` // ISO date, stamped with the processing date
	Amount       float64           `json:"amount"`
	Merchant     string            `json:"merchant"`
	Category     string            `json:"category"`
	BankName     string            `json:"bankName"`
	PaymentMode  string            `json:"paymentMode"`
	Type         TransactionType   `json:"type"`
	Status       TransactionStatus `json:"status"`
}

// Summary holds aggregate statistics derived from one batch of records.
// It is recomputed in full from the batch, never patched incrementally.
type Summary struct {
	TotalSpent        float64            `json:"totalSpent"`
	TotalIncome       float64            `json:"totalIncome"`
	TransactionCount  int                `json:"transactionCount"`
	FailedCount       int                `json:"failedCount"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
}

// Result is the output of one pipeline run: the validated, deduplicated
// record batch plus its summary. CandidateLines counts the lines that
// survived the keyword prefilter, so callers and tests can observe how many
// candidates were dropped by the amount validation gate.
type Result struct {
	RunID          string        `json:"runId"`
	Records        []Transaction `json:"records"`
	Summary        Summary       `json:"summary"`
	CandidateLines int           `json:"candidateLines"`
}
