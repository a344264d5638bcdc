package models

import (
	"time"

	"campuspay/internal/money"
)

// Top-up request statuses
const (
	TopupRequestStatusPending   = "PENDING"
	TopupRequestStatusApproved  = "APPROVED"
	TopupRequestStatusRejected  = "REJECTED"
	TopupRequestStatusCancelled = "CANCELLED"
)

// Top-up methods
const (
	TopupMethodBankTransfer = "bank_transfer"
	TopupMethodCash         = "cash"
	TopupMethodCard         = "card"
)

// TopupRequest is a user-submitted credit request awaiting admin
// review. It transitions out of PENDING exactly once and never
// touches the wallet itself; approval feeds the ledger engine.
type TopupRequest struct {
	ID              uint         `gorm:"primarykey"`
	UserID          uint         `gorm:"not null;index"`
	WalletID        uint         `gorm:"not null"`
	Amount          money.Amount `gorm:"type:numeric(20,2);not null"`
	Method          string       `gorm:"not null"`
	Note            string
	Status          string `gorm:"not null;default:'PENDING'"`
	ReferenceNumber string `gorm:"uniqueIndex;not null"`
	ProcessedBy     *uint
	ProcessedAt     *time.Time
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewTopupReferenceNumber generates a unique reference for a top-up
// request.
func NewTopupReferenceNumber(now time.Time) string {
	return referenceNumber("TPR", now)
}
