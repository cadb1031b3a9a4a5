package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkhanna/txnsight/internal/logger"
)

// Options configures one pipeline run.
type Options struct {
	// Sessions is the optional model backend. When nil, or when the probe
	// reports anything other than ready, every line uses the regex extractor.
	Sessions SessionFactory

	// ModelTimeout bounds one model round-trip; zero means
	// DefaultModelCallTimeout.
	ModelTimeout time.Duration

	// RunID overrides the generated run identifier. Callers that track runs
	// externally (e.g. the ingest job) pass their own.
	RunID string

	// Now is a test seam for the processing date; zero value means time.Now.
	Now func() time.Time
}

// Run executes one extraction-and-aggregation pass over raw notification
// text. Lines are processed strictly in order: the model session is a single
// stateful resource and deduplication must see earlier results first.
//
// Per-line failures never abort the run; they degrade to the regex extractor
// or drop the record. The returned batch replaces, never merges with, any
// previous batch the caller holds.
func Run(ctx context.Context, rawText string, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	lines := CandidateLines(rawText)

	var sess Session
	if opts.Sessions != nil && opts.Sessions.Availability(ctx) == AvailabilityReady {
		s, err := opts.Sessions.NewSession(ctx)
		if err != nil {
			// Acquisition failure means no model for the whole run.
			log.Warn().Err(err).Msg("model session unavailable, using regex extraction")
		} else {
			sess = s
			defer func() {
				if cerr := sess.Close(); cerr != nil {
					log.Warn().Err(cerr).Msg("closing model session")
				}
			}()
		}
	}

	processingDate := now().Format(dateFormat)
	records := make([]Transaction, 0, len(lines))
	seen := make(map[dedupKey]bool, len(lines))

	for _, line := range lines {
		if len(line) < minLineLength {
			continue
		}

		var ex extraction
		if sess != nil {
			mex, err := extractWithModel(ctx, sess, line, opts.ModelTimeout)
			if err != nil {
				// Per-line fallback; a model hiccup on one message does not
				// disable the model path for subsequent lines.
				log.Debug().Err(err).Str("line", line).Msg("model extraction failed, falling back to regex")
				ex = extractWithRegex(line)
			} else {
				ex = mex
			}
		} else {
			ex = extractWithRegex(line)
		}

		rec := normalize(ex, line, processingDate, runID, len(records))
		if rec.Amount <= 0 {
			// Validation gate, not an error: the drop is observable via
			// Result.CandidateLines vs len(Result.Records).
			continue
		}

		key := dedupKey{amount: rec.Amount, merchant: rec.Merchant, text: rec.OriginalText}
		if seen[key] {
			continue
		}
		seen[key] = true
		records = append(records, rec)
	}

	result := &Result{
		RunID:          runID,
		Records:        records,
		Summary:        Summarize(records),
		CandidateLines: len(lines),
	}

	log.Info().
		Str("run_id", runID).
		Int("candidate_lines", result.CandidateLines).
		Int("records", len(records)).
		Bool("model_path", sess != nil).
		Msg("pipeline run complete")

	return result, nil
}

// dedupKey defines content equivalence within one batch: two records are
// duplicates iff amount, merchant and original text all match.
type dedupKey struct {
	amount   float64
	merchant string
	text     string
}

// normalize coerces an extraction into a complete record: enum values are
// forced onto their declared sets, missing fields get the documented
// defaults, and the record is stamped with the processing date and a
// run-scoped identifier.
func normalize(ex extraction, line, processingDate, runID string, seq int) Transaction {
	typ := ex.Type
	if typ != TypeDebit && typ != TypeCredit {
		typ = TypeDebit
	}

	status := ex.Status
	switch status {
	case StatusSuccess, StatusFailed, StatusCancelled, StatusPending:
	default:
		status = StatusSuccess
	}

	merchant := strings.TrimSpace(ex.Merchant)
	if merchant == "" {
		merchant = UnknownMerchant
	}

	category := strings.TrimSpace(ex.Category)
	if category == "" {
		category = DefaultCategory
	}

	return Transaction{
		ID:           fmt.Sprintf("txn-%s-%d", shortRunID(runID), seq),
		OriginalText: line,
		Date:         processingDate,
		Amount:       ex.Amount,
		Merchant:     merchant,
		Category:     category,
		BankName:     DefaultBankName,
		PaymentMode:  DefaultPaymentMode,
		Type:         typ,
		Status:       status,
	}
}

func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}
