package pipeline

// Summarize folds a deduplicated batch into a Summary. It always recomputes
// from scratch so the summary is exactly derivable from the batch it was
// given.
//
// Only successful records contribute to the totals: debits to TotalSpent and
// the category breakdown, credits to TotalIncome. Everything else (failed,
// cancelled, pending) counts toward FailedCount but moves no money.
func Summarize(records []Transaction) Summary {
	s := Summary{
		TransactionCount:  len(records),
		CategoryBreakdown: make(map[string]float64),
	}

	for _, r := range records {
		if r.Status != StatusSuccess {
			s.FailedCount++
			continue
		}
		switch r.Type {
		case TypeCredit:
			s.TotalIncome += r.Amount
		default:
			s.TotalSpent += r.Amount
			s.CategoryBreakdown[r.Category] += r.Amount
		}
	}

	return s
}
