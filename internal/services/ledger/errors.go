package ledger

import "campuspay/internal/errors"

// Errors surfaced by the engine, re-exported from the domain error
// taxonomy so callers can match with errors.Is.
var (
	ErrWalletNotFound          = errors.ErrWalletNotFound
	ErrInsufficientBalance     = errors.ErrInsufficientBalance
	ErrDailyLimitExceeded      = errors.ErrDailyLimitExceeded
	ErrMonthlyLimitExceeded    = errors.ErrMonthlyLimitExceeded
	ErrInvalidAmount           = errors.ErrInvalidAmount
	ErrAmountOutOfRange        = errors.ErrAmountOutOfRange
	ErrTransactionNotFound     = errors.ErrTransactionNotFound
	ErrInvalidRefundTarget     = errors.ErrInvalidRefundTarget
	ErrInvalidStatusTransition = errors.ErrInvalidStatusTransition
	ErrDuplicateReference      = errors.ErrDuplicateReference
	ErrRequestNotFound         = errors.ErrRequestNotFound
	ErrRequestNotPending       = errors.ErrRequestNotPending
)
