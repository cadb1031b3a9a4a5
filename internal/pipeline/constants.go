package pipeline

import "time"

// Default values for extraction and normalization.
// These can be overridden via configuration where a knob exists.
const (
	// DefaultModelName is the default Gemini model used for extraction.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultModelCallTimeout bounds a single model round-trip. A call that
	// exceeds it falls back to the regex extractor for that line.
	DefaultModelCallTimeout = 30 * time.Second

	// UnknownMerchant is used when no merchant can be extracted.
	UnknownMerchant = "Unknown"

	// DefaultBankName and DefaultPaymentMode are placeholder values; neither
	// extractor currently populates these fields.
	DefaultBankName    = "Unknown Bank"
	DefaultPaymentMode = "Unknown"

	// DefaultCategory is assigned when an extractor returns no category.
	DefaultCategory = "Other"

	// minLineLength rejects lines too short to describe a transaction.
	minLineLength = 10

	dateFormat = "2006-01-02"
)

// transactionKeywords gates which lines are worth parsing at all. Matching is
// case-insensitive substring containment.
var transactionKeywords = []string{
	"debited",
	"credited",
	"upi",
	"imps",
	"neft",
	"rtgs",
	"spent",
	"paid",
	"sent",
	"received",
	"txn",
	"transaction",
	"refund",
	"withdrawn",
	"a/c",
}
