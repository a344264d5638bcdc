package topup

import "campuspay/internal/errors"

// Errors surfaced by the workflow, re-exported from the domain error
// taxonomy so callers can match with errors.Is.
var (
	ErrWalletNotFound     = errors.ErrWalletNotFound
	ErrInvalidAmount      = errors.ErrInvalidAmount
	ErrAmountOutOfRange   = errors.ErrAmountOutOfRange
	ErrInvalidTopupMethod = errors.ErrInvalidTopupMethod
	ErrRequestNotFound    = errors.ErrRequestNotFound
	ErrRequestNotPending  = errors.ErrRequestNotPending
	ErrNotRequestOwner    = errors.ErrNotRequestOwner
	ErrCardChargeFailed   = errors.ErrCardChargeFailed
)
