package ledger

import (
	"context"
	"time"

	"campuspay/internal/models"
	"campuspay/internal/money"
)

// WalletSnapshot is the post-operation wallet state returned to
// callers. It is a copy; mutating it has no effect on the wallet.
type WalletSnapshot struct {
	WalletID     uint         `json:"wallet_id"`
	Balance      money.Amount `json:"balance"`
	Currency     string       `json:"currency"`
	DailySpent   money.Amount `json:"daily_spent"`
	MonthlySpent money.Amount `json:"monthly_spent"`
}

// Result is returned by ProcessPayment and ProcessTopup.
type Result struct {
	Transaction *models.Transaction `json:"transaction"`
	Wallet      WalletSnapshot      `json:"wallet"`
}

// RefundResult additionally carries the refunded transaction's
// reference number.
type RefundResult struct {
	Transaction       *models.Transaction `json:"transaction"`
	OriginalReference string              `json:"original_reference"`
	Wallet            WalletSnapshot      `json:"wallet"`
}

// ApprovalResult is returned by ApproveTopupRequest.
type ApprovalResult struct {
	Request     *models.TopupRequest `json:"topup_request"`
	Transaction *models.Transaction  `json:"transaction"`
	Wallet      WalletSnapshot       `json:"wallet"`
}

// CacheOperator is the cache surface the engine needs: dropping stale
// wallet entries after a mutation.
type CacheOperator interface {
	InvalidateWallet(ctx context.Context, userID uint) error
}

// MetricsCollector receives operation metrics. Implementations must
// be safe for concurrent use.
type MetricsCollector interface {
	RecordOperationDuration(operation string, d time.Duration)
	RecordOperationResult(operation, result string)
	RecordError(operation, code string)
	RecordTransaction(txType string, amount money.Amount)
}
