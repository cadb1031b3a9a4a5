package pipeline

import "strings"

// CandidateLines splits raw notification text into lines and keeps those
// that mention at least one banking keyword, preserving input order.
// Duplicates are kept; deduplication happens after extraction so that the
// first occurrence of a repeated message wins.
func CandidateLines(rawText string) []string {
	var candidates []string
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range transactionKeywords {
			if strings.Contains(lower, kw) {
				candidates = append(candidates, line)
				break
			}
		}
	}
	return candidates
}
