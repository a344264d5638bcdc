package models

import (
	"time"

	"gorm.io/gorm"

	"campuspay/internal/errors"
	"campuspay/internal/money"
)

// Default limits applied to new wallets. Amounts are IDR.
var (
	DefaultDailyLimit   = money.New(1_000_000)
	DefaultMonthlyLimit = money.New(10_000_000)
)

// Wallet holds a student's balance and spending counters. Balances
// and counters are mutated only by the ledger engine.
type Wallet struct {
	ID                uint         `gorm:"primarykey"`
	UserID            uint         `gorm:"uniqueIndex;not null"`
	Balance           money.Amount `gorm:"type:numeric(20,2);default:0"`
	Currency          string       `gorm:"size:3;default:'IDR'"`
	DailyLimit        money.Amount `gorm:"type:numeric(20,2)"`
	MonthlyLimit      money.Amount `gorm:"type:numeric(20,2)"`
	DailySpent        money.Amount `gorm:"type:numeric(20,2);default:0"`
	MonthlySpent      money.Amount `gorm:"type:numeric(20,2);default:0"`
	LastTransactionAt *time.Time
	IsActive          bool `gorm:"default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// New wallets always start empty regardless of caller input.
	w.Balance = money.Zero()
	w.DailySpent = money.Zero()
	w.MonthlySpent = money.Zero()
	if w.DailyLimit.IsZero() {
		w.DailyLimit = DefaultDailyLimit
	}
	if w.MonthlyLimit.IsZero() {
		w.MonthlyLimit = DefaultMonthlyLimit
	}
	return nil
}

// CanSpend reports whether a spend of amount is allowed at now. It
// never mutates the wallet. Limit checks run against the counters as
// they would stand after rollover, so a dormant wallet is not blocked
// by a stale counter.
func (w *Wallet) CanSpend(amount money.Amount, now time.Time) error {
	if !amount.IsPositive() {
		return errors.ErrInvalidAmount
	}
	if w.Balance.LessThan(amount) {
		return errors.ErrInsufficientBalance
	}

	daily, monthly := w.rolledCounters(now)
	if daily.Add(amount).GreaterThan(w.DailyLimit) {
		return errors.ErrDailyLimitExceeded
	}
	if monthly.Add(amount).GreaterThan(w.MonthlyLimit) {
		return errors.ErrMonthlyLimitExceeded
	}
	return nil
}

// ApplySpend decreases the balance and advances the spend counters,
// applying the calendar rollover rule. The caller must have confirmed
// CanSpend with the same now.
func (w *Wallet) ApplySpend(amount money.Amount, now time.Time) {
	w.Balance = w.Balance.Sub(amount)

	daily, monthly := w.rolledCounters(now)
	w.DailySpent = daily.Add(amount)
	w.MonthlySpent = monthly.Add(amount)

	ts := now
	w.LastTransactionAt = &ts
}

// ApplyCredit increases the balance. Credits are not spend, but the
// rollover still has to be materialized here: advancing
// LastTransactionAt without it would hide a crossed day or month
// boundary from the next spend.
func (w *Wallet) ApplyCredit(amount money.Amount, now time.Time) {
	w.DailySpent, w.MonthlySpent = w.rolledCounters(now)
	w.Balance = w.Balance.Add(amount)
	ts := now
	w.LastTransactionAt = &ts
}

// rolledCounters returns the spend counters after evaluating the day
// and month boundaries at now. The day and month resets are
// independent checks against the same last-transaction timestamp; a
// wallet dormant across both boundaries resets both.
func (w *Wallet) rolledCounters(now time.Time) (daily, monthly money.Amount) {
	if w.LastTransactionAt == nil {
		return money.Zero(), money.Zero()
	}

	daily = w.DailySpent
	monthly = w.MonthlySpent

	last := *w.LastTransactionAt
	if last.Before(startOfDay(now)) {
		daily = money.Zero()
	}
	if last.Before(startOfMonth(now)) {
		monthly = money.Zero()
	}
	return daily, monthly
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
