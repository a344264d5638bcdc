package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"campuspay/internal/money"
)

// Transaction types
const (
	TransactionTypeTopup    = "TOPUP"
	TransactionTypePayment  = "PAYMENT"
	TransactionTypeRefund   = "REFUND"
	TransactionTypeTransfer = "TRANSFER"
)

// Transaction statuses
const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusFailed    = "FAILED"
	TransactionStatusCancelled = "CANCELLED"
)

// Transaction is the immutable audit entry for every ledger-affecting
// operation. Records reaching a terminal status are never mutated
// again except through the explicit admin override path.
type Transaction struct {
	ID              uint         `gorm:"primarykey"`
	UserID          uint         `gorm:"not null;index"`
	WalletID        uint         `gorm:"not null;index"`
	Type            string       `gorm:"not null"`
	Amount          money.Amount `gorm:"type:numeric(20,2);not null"`
	Status          string       `gorm:"not null;default:'PENDING'"`
	ReferenceNumber string       `gorm:"uniqueIndex;not null"`
	Description     string
	Metadata        JSON `gorm:"type:jsonb"`
	ProcessedAt     *time.Time
	ProcessedBy     *uint
	FailureReason   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsTerminal reports whether the status admits no further transition.
func (t *Transaction) IsTerminal() bool {
	switch t.Status {
	case TransactionStatusCompleted, TransactionStatusFailed, TransactionStatusCancelled:
		return true
	}
	return false
}

// NewReferenceNumber generates a globally unique transaction
// reference. Uniqueness is ultimately guaranteed by the database
// constraint; a collision surfaces as a duplicate-key error.
func NewReferenceNumber(now time.Time) string {
	return referenceNumber("TRX", now)
}

func referenceNumber(prefix string, now time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), id[:10])
}
