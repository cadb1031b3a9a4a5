package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// extraction is the best-effort partial record an extractor produces for one
// line. Missing fields are left zero for the orchestrator to default.
type extraction struct {
	Amount   float64
	Merchant string
	Category string
	Type     TransactionType
	Status   TransactionStatus
}

var (
	// Currency-prefixed amount: "Rs. 540.00", "INR 2,499.00", "rs 80".
	amountPattern = regexp.MustCompile(`(?i)(?:rs\.?|inr)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)

	// Merchant is the text after a preposition, up to a boundary token or a
	// period. "to" is tried before "at" and "from" so that the payee wins
	// over the source bank when a message carries both
	// ("... debited from HDFC Bank ... to Zomato Pvt Ltd on ...").
	merchantPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bto\s+(.+?)(?:\s+(?:on|via|using|through|ref|bal|is|ending)\b|\.|$)`),
		regexp.MustCompile(`(?i)\bat\s+(.+?)(?:\s+(?:on|via|using|through|ref|bal|is|ending)\b|\.|$)`),
		regexp.MustCompile(`(?i)\bfrom\s+(.+?)(?:\s+(?:on|via|using|through|ref|bal|is|ending)\b|\.|$)`),
	}

	creditPattern = regexp.MustCompile(`(?i)\b(?:credited|received)\b`)
	failedPattern = regexp.MustCompile(`(?i)\b(?:failed|declined)\b`)
	refundPattern = regexp.MustCompile(`(?i)\b(?:refund(?:ed)?|reversed)\b`)
)

// categoryKeywords maps merchant-name fragments to categories for the regex
// path. First group that matches wins.
var categoryKeywords = []struct {
	category string
	names    []string
}{
	{"Food", []string{"zomato", "swiggy", "dominos", "mcdonald", "kfc", "pizza", "starbucks", "cafe", "restaurant"}},
	{"Travel", []string{"uber", "ola", "rapido", "irctc", "redbus", "makemytrip", "petrol", "fuel", "hpcl", "iocl"}},
}

// extractWithRegex is the deterministic heuristic extractor. It never fails:
// unmatched patterns degrade to placeholder values so the pipeline always
// produces a record for the line, to be validated downstream.
func extractWithRegex(line string) extraction {
	ex := extraction{
		Amount:   extractAmount(line),
		Merchant: extractMerchant(line),
		Type:     TypeDebit,
		Status:   StatusSuccess,
	}

	if creditPattern.MatchString(line) {
		ex.Type = TypeCredit
	}

	// Refund language without a credit verb is a cancellation, not income.
	switch {
	case failedPattern.MatchString(line):
		ex.Status = StatusFailed
	case refundPattern.MatchString(line) && ex.Type != TypeCredit:
		ex.Status = StatusCancelled
	}

	ex.Category = categorize(ex.Merchant)
	return ex
}

func extractAmount(line string) float64 {
	m := amountPattern.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	raw := strings.ReplaceAll(m[1], ",", "")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return amount
}

func extractMerchant(line string) string {
	for _, p := range merchantPatterns {
		if m := p.FindStringSubmatch(line); m != nil {
			merchant := strings.TrimSpace(m[1])
			if merchant != "" {
				return merchant
			}
		}
	}
	return UnknownMerchant
}

func categorize(merchant string) string {
	lower := strings.ToLower(merchant)
	for _, group := range categoryKeywords {
		for _, name := range group.names {
			if strings.Contains(lower, name) {
				return group.category
			}
		}
	}
	return "General"
}
