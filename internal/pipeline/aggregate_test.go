package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	records := []Transaction{
		{Amount: 540, Category: "Food", Type: TypeDebit, Status: StatusSuccess},
		{Amount: 120, Category: "Food", Type: TypeDebit, Status: StatusSuccess},
		{Amount: 300, Category: "Travel", Type: TypeDebit, Status: StatusSuccess},
		{Amount: 12000, Category: "Other", Type: TypeCredit, Status: StatusSuccess},
		{Amount: 2499, Category: "Shopping", Type: TypeDebit, Status: StatusFailed},
		{Amount: 450, Category: "Travel", Type: TypeDebit, Status: StatusCancelled},
		{Amount: 99, Category: "Bills", Type: TypeDebit, Status: StatusPending},
	}

	s := Summarize(records)

	assert.Equal(t, 960.0, s.TotalSpent)
	assert.Equal(t, 12000.0, s.TotalIncome)
	assert.Equal(t, 7, s.TransactionCount)
	// failed, cancelled and pending all count as non-successful
	assert.Equal(t, 3, s.FailedCount)
	assert.Equal(t, map[string]float64{"Food": 660, "Travel": 300}, s.CategoryBreakdown)
}

func TestSummarize_Idempotent(t *testing.T) {
	records := []Transaction{
		{Amount: 540, Category: "Food", Type: TypeDebit, Status: StatusSuccess},
		{Amount: 450, Category: "Other", Type: TypeCredit, Status: StatusSuccess},
	}

	first := Summarize(records)
	second := Summarize(records)

	assert.Equal(t, first, second)
}

func TestSummarize_CategoryBreakdownSumsToTotalSpent(t *testing.T) {
	records := []Transaction{
		{Amount: 540, Category: "Food", Type: TypeDebit, Status: StatusSuccess},
		{Amount: 300, Category: "Travel", Type: TypeDebit, Status: StatusSuccess},
		{Amount: 99, Category: "Bills", Type: TypeDebit, Status: StatusSuccess},
		{Amount: 1000, Category: "Other", Type: TypeCredit, Status: StatusSuccess},
		{Amount: 75, Category: "Shopping", Type: TypeDebit, Status: StatusFailed},
	}

	s := Summarize(records)

	var sum float64
	for _, v := range s.CategoryBreakdown {
		sum += v
	}
	assert.Equal(t, s.TotalSpent, sum)
}

func TestSummarize_EmptyBatch(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.TransactionCount)
	assert.Equal(t, 0.0, s.TotalSpent)
	assert.Equal(t, 0.0, s.TotalIncome)
	assert.NotNil(t, s.CategoryBreakdown)
	assert.Empty(t, s.CategoryBreakdown)
}
