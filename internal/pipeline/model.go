package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// extractionPrompt instructs the model to answer with a single JSON object.
// The notification line is appended at the end.
const extractionPrompt = "You are a parser for bank notification messages (SMS-style).\n\n" +
	"Task:\n" +
	"- Extract the transaction described by the message below.\n" +
	"- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n" +
	"- Output a SINGLE JSON object.\n\n" +
	"The object must have these fields:\n" +
	"- \"amount\": number (the transaction amount, always positive)\n" +
	"- \"merchant\": string (the counterparty, or \"Unknown\")\n" +
	"- \"category\": string, one of \"Food\", \"Travel\", \"Bills\", \"Shopping\", \"General\", \"Other\"\n" +
	"- \"type\": \"debit\" or \"credit\"\n" +
	"- \"status\": one of \"success\", \"failed\", \"cancelled\", \"pending\"\n\n" +
	"Return ONLY valid raw JSON.\n" +
	"Do NOT wrap the response in code fences.\n\n" +
	"Message:\n"

// modelPayload mirrors the JSON object the prompt asks for.
type modelPayload struct {
	Amount   float64 `json:"amount"`
	Merchant string  `json:"merchant"`
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Status   string  `json:"status"`
}

// extractWithModel asks the session to parse one line. Any failure (call
// error, timeout, no JSON object in the response, decode error) is returned
// to the caller, which falls back to the regex extractor for this line only.
func extractWithModel(ctx context.Context, sess Session, line string, timeout time.Duration) (extraction, error) {
	if timeout <= 0 {
		timeout = DefaultModelCallTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := sess.Prompt(callCtx, extractionPrompt+line)
	if err != nil {
		return extraction{}, fmt.Errorf("extractWithModel: prompt: %w", err)
	}

	obj, ok := firstJSONObject(raw)
	if !ok {
		return extraction{}, fmt.Errorf("extractWithModel: no JSON object in model response")
	}

	var payload modelPayload
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return extraction{}, fmt.Errorf("extractWithModel: unmarshal JSON: %w", err)
	}

	ex := extraction{
		Amount:   payload.Amount,
		Merchant: strings.TrimSpace(payload.Merchant),
		Category: strings.TrimSpace(payload.Category),
		Type:     TransactionType(strings.ToLower(strings.TrimSpace(payload.Type))),
		Status:   TransactionStatus(strings.ToLower(strings.TrimSpace(payload.Status))),
	}
	if ex.Merchant == "" {
		ex.Merchant = UnknownMerchant
	}
	return ex, nil
}

// firstJSONObject returns the first balanced {...} substring of s. Models
// sometimes wrap the object in commentary or code fences; this recovers the
// object without caring about the wrapping. Braces inside JSON strings are
// ignored.
func firstJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
