package ledger

import (
	"context"
	"time"

	"campuspay/internal/money"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (NoopMetricsCollector) RecordOperationResult(string, string)          {}
func (NoopMetricsCollector) RecordError(string, string)                    {}
func (NoopMetricsCollector) RecordTransaction(string, money.Amount)        {}

type noopCache struct{}

func (noopCache) InvalidateWallet(ctx context.Context, userID uint) error { return nil }
