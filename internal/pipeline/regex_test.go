package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name string
		line string
		want float64
	}{
		{"rs with decimals", "Rs. 540.00 debited from A/c XX8921", 540},
		{"inr with thousands separator", "Txn of INR 2,499.00 at Flipkart", 2499},
		{"lowercase rs without dot", "rs 80 paid to chaiwala", 80},
		{"no fraction", "INR 12000 credited to your a/c", 12000},
		{"single decimal digit", "Rs. 99.5 spent at store", 99.5},
		{"no currency marker", "540.00 debited from your account", 0},
		{"no number after marker", "Rs. debited from your account", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractAmount(tt.line))
		})
	}
}

func TestExtractMerchant(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "payee beats source bank",
			line: "Rs. 540.00 debited from HDFC Bank A/c XX8921 via UPI to Zomato Pvt Ltd on 12-05-24.",
			want: "Zomato Pvt Ltd",
		},
		{
			name: "at merchant stops at via",
			line: "Rs. 250.00 spent at Cafe Coffee Day via card ending 1234",
			want: "Cafe Coffee Day",
		},
		{
			name: "from merchant stops at period",
			line: "Refund of Rs. 450.00 received from Uber India.",
			want: "Uber India",
		},
		{
			name: "stops at bal token",
			line: "Rs. 100 paid to Ramesh bal is 4500",
			want: "Ramesh",
		},
		{
			name: "no preposition",
			line: "Rs. 100 debited for charges",
			want: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractMerchant(tt.line))
		})
	}
}

func TestExtractWithRegex_TypeAndStatus(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantType   TransactionType
		wantStatus TransactionStatus
	}{
		{
			name:       "plain debit",
			line:       "Rs. 540.00 debited from your a/c to Zomato",
			wantType:   TypeDebit,
			wantStatus: StatusSuccess,
		},
		{
			name:       "credited is credit",
			line:       "INR 12,000.00 credited to your a/c from ACME Corp",
			wantType:   TypeCredit,
			wantStatus: StatusSuccess,
		},
		{
			name:       "failed txn",
			line:       "Txn of INR 2,499.00 to Flipkart failed due to incorrect OTP",
			wantType:   TypeDebit,
			wantStatus: StatusFailed,
		},
		{
			name:       "declined txn",
			line:       "Payment of Rs. 300 to BESCOM declined by bank",
			wantType:   TypeDebit,
			wantStatus: StatusFailed,
		},
		{
			// Refund language without a credit verb is a cancellation, not
			// income.
			name:       "refund without credit verb is cancelled",
			line:       "Refund of Rs. 450.00 initiated to Uber India for txn 998",
			wantType:   TypeDebit,
			wantStatus: StatusCancelled,
		},
		{
			// The same refund language with a credit verb stays a successful
			// credit; "received" matches before the refund check.
			name:       "refund with credit verb stays credit",
			line:       "Refund of Rs. 450.00 received from Uber India for cancelled ride.",
			wantType:   TypeCredit,
			wantStatus: StatusSuccess,
		},
		{
			name:       "reversed without credit verb is cancelled",
			line:       "Txn of Rs. 99 to PVR reversed by bank",
			wantType:   TypeDebit,
			wantStatus: StatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := extractWithRegex(tt.line)
			assert.Equal(t, tt.wantType, ex.Type)
			assert.Equal(t, tt.wantStatus, ex.Status)
		})
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		merchant string
		want     string
	}{
		{"Zomato Pvt Ltd", "Food"},
		{"SWIGGY BANGALORE", "Food"},
		{"Uber India", "Travel"},
		{"HPCL Petrol Pump", "Travel"},
		{"Some Random Shop", "General"},
		{"Unknown", "General"},
	}

	for _, tt := range tests {
		t.Run(tt.merchant, func(t *testing.T) {
			assert.Equal(t, tt.want, categorize(tt.merchant))
		})
	}
}
