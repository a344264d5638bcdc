package ledger

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"campuspay/internal/errors"
	"campuspay/internal/models"
	"campuspay/internal/money"
	"campuspay/internal/repositories"
)

// Service is the ledger operation engine. All dependencies are
// injected; there is no package-level state.
type Service struct {
	store   repositories.Store
	cache   CacheOperator
	metrics MetricsCollector
	logger  zerolog.Logger
	locks   *walletLocks
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the wall clock, fixing rollover evaluation in
// tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the ledger engine. store is required; cache and
// metrics fall back to no-op implementations when nil.
func NewService(store repositories.Store, cache CacheOperator, metrics MetricsCollector, logger zerolog.Logger, opts ...Option) *Service {
	if store == nil {
		panic("store is required")
	}
	if cache == nil {
		cache = noopCache{}
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	s := &Service{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		locks:   newWalletLocks(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessPayment debits the user's wallet after balance and limit
// checks and records a COMPLETED PAYMENT transaction.
func (s *Service) ProcessPayment(ctx context.Context, userID uint, amount money.Amount, description string) (*Result, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	now := s.now()
	var (
		txn      *models.Transaction
		snapshot WalletSnapshot
	)
	err := s.run(ctx, opPayment, func(st repositories.Store) error {
		wallet, err := s.loadActiveWallet(ctx, st, userID)
		if err != nil {
			return err
		}
		if err := wallet.CanSpend(amount, now); err != nil {
			return err
		}

		txn = s.newTransaction(wallet, models.TransactionTypePayment, amount, description, nil, now)
		if err := st.Transactions().Create(ctx, txn); err != nil {
			return mapDuplicate(err)
		}

		wallet.ApplySpend(amount, now)
		if err := st.Wallets().Update(ctx, wallet); err != nil {
			return err
		}
		snapshot = snapshotOf(wallet)
		return nil
	}, func() *models.Transaction { return txn })
	if err != nil {
		return nil, err
	}

	s.finish(ctx, opPayment, models.TransactionTypePayment, userID, amount, now)
	return &Result{Transaction: txn, Wallet: snapshot}, nil
}

// ProcessTopup credits the user's wallet and records a COMPLETED
// TOPUP transaction. Top-ups are not spend, so daily/monthly limits
// do not apply; only the amount bounds do. metadata may carry
// provenance such as a card charge id.
func (s *Service) ProcessTopup(ctx context.Context, userID uint, amount money.Amount, description string, metadata models.JSON) (*Result, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	now := s.now()
	var (
		txn      *models.Transaction
		snapshot WalletSnapshot
	)
	err := s.run(ctx, opTopup, func(st repositories.Store) error {
		wallet, err := s.loadActiveWallet(ctx, st, userID)
		if err != nil {
			return err
		}

		txn = s.newTransaction(wallet, models.TransactionTypeTopup, amount, description, metadata, now)
		if err := st.Transactions().Create(ctx, txn); err != nil {
			return mapDuplicate(err)
		}

		wallet.ApplyCredit(amount, now)
		if err := st.Wallets().Update(ctx, wallet); err != nil {
			return err
		}
		snapshot = snapshotOf(wallet)
		return nil
	}, func() *models.Transaction { return txn })
	if err != nil {
		return nil, err
	}

	s.finish(ctx, opTopup, models.TransactionTypeTopup, userID, amount, now)
	return &Result{Transaction: txn, Wallet: snapshot}, nil
}

// ProcessRefund credits back a COMPLETED, non-TOPUP transaction and
// records a REFUND transaction referencing the original.
func (s *Service) ProcessRefund(ctx context.Context, transactionID uint, reason string) (*RefundResult, error) {
	original, err := s.store.Transactions().GetByID(ctx, transactionID)
	if err != nil {
		return nil, mapStoreError(err, errors.ErrTransactionNotFound)
	}
	if original.Status != models.TransactionStatusCompleted {
		return nil, errors.ErrTransactionNotFound
	}
	if original.Type == models.TransactionTypeTopup {
		return nil, errors.ErrInvalidRefundTarget
	}

	unlock := s.locks.Lock(original.UserID)
	defer unlock()

	now := s.now()
	amount := original.Amount
	description := fmt.Sprintf("Refund of %s", original.ReferenceNumber)
	metadata := models.JSON{
		"original_transaction_id": original.ID,
		"original_reference":      original.ReferenceNumber,
		"reason":                  reason,
	}

	var (
		txn      *models.Transaction
		snapshot WalletSnapshot
	)
	err = s.run(ctx, opRefund, func(st repositories.Store) error {
		wallet, err := s.loadActiveWallet(ctx, st, original.UserID)
		if err != nil {
			return err
		}

		txn = s.newTransaction(wallet, models.TransactionTypeRefund, amount, description, metadata, now)
		if err := st.Transactions().Create(ctx, txn); err != nil {
			return mapDuplicate(err)
		}

		wallet.ApplyCredit(amount, now)
		if err := st.Wallets().Update(ctx, wallet); err != nil {
			return err
		}
		snapshot = snapshotOf(wallet)
		return nil
	}, func() *models.Transaction { return txn })
	if err != nil {
		return nil, err
	}

	s.finish(ctx, opRefund, models.TransactionTypeRefund, original.UserID, amount, now)
	return &RefundResult{
		Transaction:       txn,
		OriginalReference: original.ReferenceNumber,
		Wallet:            snapshot,
	}, nil
}

// ApproveTopupRequest approves a PENDING top-up request: one
// COMPLETED TOPUP transaction is created, the wallet credited, and
// the request marked APPROVED, as a single unit of work.
func (s *Service) ApproveTopupRequest(ctx context.Context, requestID, adminID uint) (*ApprovalResult, error) {
	req, err := s.store.TopupRequests().GetByID(ctx, requestID)
	if err != nil {
		return nil, mapStoreError(err, errors.ErrRequestNotFound)
	}
	if req.Status != models.TopupRequestStatusPending {
		return nil, errors.ErrRequestNotPending
	}

	unlock := s.locks.Lock(req.UserID)
	defer unlock()

	now := s.now()
	var (
		txn      *models.Transaction
		snapshot WalletSnapshot
	)
	err = s.run(ctx, opApprove, func(st repositories.Store) error {
		// Re-read under the lock; a concurrent approval may have
		// already consumed the request.
		req, err = st.TopupRequests().GetByID(ctx, requestID)
		if err != nil {
			return mapStoreError(err, errors.ErrRequestNotFound)
		}
		if req.Status != models.TopupRequestStatusPending {
			return errors.ErrRequestNotPending
		}

		wallet, err := s.loadActiveWallet(ctx, st, req.UserID)
		if err != nil {
			return err
		}

		description := fmt.Sprintf("Top-up request %s approved", req.ReferenceNumber)
		txn = s.newTransaction(wallet, models.TransactionTypeTopup, req.Amount, description, models.JSON{
			"topup_request_id":  req.ID,
			"request_reference": req.ReferenceNumber,
			"method":            req.Method,
		}, now)
		txn.ProcessedBy = &adminID
		if err := st.Transactions().Create(ctx, txn); err != nil {
			return mapDuplicate(err)
		}

		wallet.ApplyCredit(req.Amount, now)
		if err := st.Wallets().Update(ctx, wallet); err != nil {
			return err
		}

		req.Status = models.TopupRequestStatusApproved
		req.ProcessedBy = &adminID
		req.ProcessedAt = &now
		if err := st.TopupRequests().UpdatePending(ctx, req); err != nil {
			if stderrors.Is(err, repositories.ErrNoPendingRequest) {
				return errors.ErrRequestNotPending
			}
			return err
		}
		snapshot = snapshotOf(wallet)
		return nil
	}, func() *models.Transaction { return txn })
	if err != nil {
		return nil, err
	}

	s.finish(ctx, opApprove, models.TransactionTypeTopup, req.UserID, req.Amount, now)
	return &ApprovalResult{Request: req, Transaction: txn, Wallet: snapshot}, nil
}

// RejectTopupRequest marks a PENDING request REJECTED. No ledger
// mutation takes place.
func (s *Service) RejectTopupRequest(ctx context.Context, requestID, adminID uint, reason string) (*models.TopupRequest, error) {
	req, err := s.store.TopupRequests().GetByID(ctx, requestID)
	if err != nil {
		return nil, mapStoreError(err, errors.ErrRequestNotFound)
	}
	if req.Status != models.TopupRequestStatusPending {
		return nil, errors.ErrRequestNotPending
	}

	unlock := s.locks.Lock(req.UserID)
	defer unlock()

	// Re-read under the lock; an approval for the same request may have
	// committed in the meantime.
	req, err = s.store.TopupRequests().GetByID(ctx, requestID)
	if err != nil {
		return nil, mapStoreError(err, errors.ErrRequestNotFound)
	}
	if req.Status != models.TopupRequestStatusPending {
		return nil, errors.ErrRequestNotPending
	}

	now := s.now()
	req.Status = models.TopupRequestStatusRejected
	req.RejectionReason = reason
	req.ProcessedBy = &adminID
	req.ProcessedAt = &now
	if err := s.store.TopupRequests().UpdatePending(ctx, req); err != nil {
		if stderrors.Is(err, repositories.ErrNoPendingRequest) {
			return nil, errors.ErrRequestNotPending
		}
		s.metrics.RecordError(opReject, "store")
		return nil, fmt.Errorf("failed to reject top-up request: %w", err)
	}

	s.metrics.RecordOperationResult(opReject, "success")
	return req, nil
}

// OverrideTransactionStatus is the explicit administrative path out
// of a terminal transaction status. It records who did it and why,
// and never touches wallet balances.
func (s *Service) OverrideTransactionStatus(ctx context.Context, transactionID, adminID uint, status, reason string) (*models.Transaction, error) {
	switch status {
	case models.TransactionStatusCompleted,
		models.TransactionStatusFailed,
		models.TransactionStatusCancelled:
	default:
		return nil, errors.ErrInvalidStatusTransition
	}

	txn, err := s.store.Transactions().GetByID(ctx, transactionID)
	if err != nil {
		return nil, mapStoreError(err, errors.ErrTransactionNotFound)
	}
	if txn.Status == status {
		return nil, errors.ErrInvalidStatusTransition
	}

	now := s.now()
	previous := txn.Status
	txn.Status = status
	txn.FailureReason = reason
	txn.ProcessedBy = &adminID
	txn.ProcessedAt = &now
	if err := s.store.Transactions().Update(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to override transaction status: %w", err)
	}

	s.logger.Warn().
		Str("reference", txn.ReferenceNumber).
		Str("from", previous).
		Str("to", status).
		Uint("admin_id", adminID).
		Str("reason", reason).
		Msg("transaction status overridden")
	s.metrics.RecordOperationResult(opOverride, "success")
	return txn, nil
}

// run executes fn inside a storage transaction when the store
// provides one. Stores that cannot scope the writes together run fn
// directly; if fn fails after creating its transaction record, the
// orphaned record is deleted so a COMPLETED transaction never exists
// without its balance change. The original failure is surfaced, the
// compensation only logged.
func (s *Service) run(ctx context.Context, operation string, fn func(repositories.Store) error, orphan func() *models.Transaction) error {
	err := s.store.ExecuteInTransaction(fn)
	if !stderrors.Is(err, repositories.ErrAtomicityNotSupported) {
		s.record(operation, err)
		return err
	}

	err = fn(s.store)
	if err != nil {
		if txn := orphan(); txn != nil && txn.ID != 0 {
			if delErr := s.store.Transactions().Delete(ctx, txn.ID); delErr != nil {
				s.logger.Error().
					Err(delErr).
					Str("reference", txn.ReferenceNumber).
					Msg("failed to roll back orphaned transaction")
			} else {
				s.logger.Warn().
					Str("reference", txn.ReferenceNumber).
					Str("operation", operation).
					Msg("rolled back orphaned transaction after partial failure")
			}
		}
	}
	s.record(operation, err)
	return err
}

func (s *Service) loadActiveWallet(ctx context.Context, st repositories.Store, userID uint) (*models.Wallet, error) {
	wallet, err := st.Wallets().GetActiveByUserIDForUpdate(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err, errors.ErrWalletNotFound)
	}
	return wallet, nil
}

func (s *Service) newTransaction(wallet *models.Wallet, txType string, amount money.Amount, description string, metadata models.JSON, now time.Time) *models.Transaction {
	processedAt := now
	return &models.Transaction{
		UserID:          wallet.UserID,
		WalletID:        wallet.ID,
		Type:            txType,
		Amount:          amount,
		Status:          models.TransactionStatusCompleted,
		ReferenceNumber: models.NewReferenceNumber(now),
		Description:     description,
		Metadata:        metadata,
		ProcessedAt:     &processedAt,
	}
}

// finish runs the post-commit bookkeeping: cache invalidation and
// metrics. Failures here never fail the operation.
func (s *Service) finish(ctx context.Context, operation, txType string, userID uint, amount money.Amount, started time.Time) {
	if err := s.cache.InvalidateWallet(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Msg("failed to invalidate wallet cache")
	}
	s.metrics.RecordOperationDuration(operation, s.now().Sub(started))
	s.metrics.RecordTransaction(txType, amount)
}

func (s *Service) record(operation string, err error) {
	if err == nil {
		s.metrics.RecordOperationResult(operation, "success")
		return
	}
	s.metrics.RecordOperationResult(operation, "failure")
	var domainErr *errors.DomainError
	if stderrors.As(err, &domainErr) {
		s.metrics.RecordError(operation, domainErr.Code)
	} else {
		s.metrics.RecordError(operation, "internal")
	}
}

func snapshotOf(wallet *models.Wallet) WalletSnapshot {
	return WalletSnapshot{
		WalletID:     wallet.ID,
		Balance:      wallet.Balance,
		Currency:     wallet.Currency,
		DailySpent:   wallet.DailySpent,
		MonthlySpent: wallet.MonthlySpent,
	}
}

func validateAmount(amount money.Amount) error {
	if !amount.IsPositive() {
		return errors.ErrInvalidAmount
	}
	if amount.LessThan(MinTransactionAmount) || amount.GreaterThan(MaxTransactionAmount) {
		return errors.ErrAmountOutOfRange
	}
	return nil
}

func mapDuplicate(err error) error {
	if stderrors.Is(err, repositories.ErrDuplicateKey) {
		return errors.ErrDuplicateReference
	}
	return err
}

// mapStoreError converts a repository not-found into the matching
// domain error, passing other failures through.
func mapStoreError(err error, notFound error) error {
	switch {
	case stderrors.Is(err, repositories.ErrWalletNotFound),
		stderrors.Is(err, repositories.ErrTransactionNotFound),
		stderrors.Is(err, repositories.ErrTopupRequestNotFound):
		return notFound
	default:
		return err
	}
}
