package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewReferenceNumber(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	ref := NewReferenceNumber(now)
	assert.Regexp(t, `^TRX-20250315-[0-9A-F]{10}$`, ref)

	topupRef := NewTopupReferenceNumber(now)
	assert.Regexp(t, `^TPR-20250315-[0-9A-F]{10}$`, topupRef)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		r := NewReferenceNumber(now)
		assert.False(t, seen[r], "duplicate reference %s", r)
		seen[r] = true
	}
}

func TestTransactionIsTerminal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{TransactionStatusPending, false},
		{TransactionStatusCompleted, true},
		{TransactionStatusFailed, true},
		{TransactionStatusCancelled, true},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			txn := &Transaction{Status: tt.status}
			assert.Equal(t, tt.want, txn.IsTerminal())
		})
	}
}
