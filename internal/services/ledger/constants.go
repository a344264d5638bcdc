package ledger

import "campuspay/internal/money"

// Business amount bounds for ledger transactions, IDR.
var (
	MinTransactionAmount = money.New(1_000)
	MaxTransactionAmount = money.New(10_000_000)
)

// Operation names used for metrics and logging.
const (
	opPayment  = "payment"
	opTopup    = "topup"
	opRefund   = "refund"
	opApprove  = "topup_approve"
	opReject   = "topup_reject"
	opOverride = "status_override"
)
