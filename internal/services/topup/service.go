// Package topup implements the top-up request workflow: students file
// credit requests, admins review them. The workflow never touches
// wallet balances; approval and rejection are ledger engine
// operations. Instant card top-ups charge the card through a
// CardGateway and then credit through the engine.
package topup

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
	"campuspay/internal/services/ledger"
)

// Request amount bounds. Requests allow larger amounts than direct
// transactions because an admin signs off before any credit happens.
var (
	MinRequestAmount = money.New(1_000)
	MaxRequestAmount = money.New(50_000_000)
)

// Engine is the slice of the ledger engine the card top-up path needs.
type Engine interface {
	ProcessTopup(ctx context.Context, userID uint, amount money.Amount, description string, metadata models.JSON) (*ledger.Result, error)
}

// Service manages top-up requests and instant card top-ups.
type Service struct {
	store   repositories.Store
	engine  Engine
	gateway CardGateway
	logger  zerolog.Logger
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the wall clock used for reference numbers and
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the workflow service. gateway may be nil when
// card top-ups are disabled; Topup-ByCard then fails up front.
func NewService(store repositories.Store, engine Engine, gateway CardGateway, logger zerolog.Logger, opts ...Option) *Service {
	if store == nil {
		panic("store is required")
	}
	if engine == nil {
		panic("engine is required")
	}

	s := &Service{
		store:   store,
		engine:  engine,
		gateway: gateway,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest files a PENDING top-up request for the user's active
// wallet.
func (s *Service) CreateRequest(ctx context.Context, userID uint, amount money.Amount, method, note string) (*models.TopupRequest, error) {
	if err := validateRequestAmount(amount); err != nil {
		return nil, err
	}
	switch method {
	case models.TopupMethodBankTransfer, models.TopupMethodCash, models.TopupMethodCard:
	default:
		return nil, errors.ErrInvalidTopupMethod
	}

	wallet, err := s.store.Wallets().GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.ErrWalletNotFound
	}
	if !wallet.IsActive {
		return nil, errors.ErrWalletNotFound
	}

	now := s.now()
	req := &models.TopupRequest{
		UserID:          userID,
		WalletID:        wallet.ID,
		Amount:          amount,
		Method:          method,
		Note:            note,
		Status:          models.TopupRequestStatusPending,
		ReferenceNumber: models.NewTopupReferenceNumber(now),
	}
	if err := s.store.TopupRequests().Create(ctx, req); err != nil {
		if stderrors.Is(err, repositories.ErrDuplicateKey) {
			return nil, errors.ErrDuplicateReference
		}
		return nil, fmt.Errorf("failed to create top-up request: %w", err)
	}

	s.logger.Info().
		Uint("user_id", userID).
		Str("reference", req.ReferenceNumber).
		Str("method", method).
		Msg("top-up request created")
	return req, nil
}

// CancelRequest lets the owner withdraw a request that is still
// PENDING.
func (s *Service) CancelRequest(ctx context.Context, requestID, userID uint) (*models.TopupRequest, error) {
	req, err := s.store.TopupRequests().GetByID(ctx, requestID)
	if err != nil {
		return nil, errors.ErrRequestNotFound
	}
	if req.UserID != userID {
		return nil, errors.ErrNotRequestOwner
	}
	if req.Status != models.TopupRequestStatusPending {
		return nil, errors.ErrRequestNotPending
	}

	// Conditional write: an admin review may land between the read
	// above and this update, and it must win.
	req.Status = models.TopupRequestStatusCancelled
	if err := s.store.TopupRequests().UpdatePending(ctx, req); err != nil {
		if stderrors.Is(err, repositories.ErrNoPendingRequest) {
			return nil, errors.ErrRequestNotPending
		}
		return nil, fmt.Errorf("failed to cancel top-up request: %w", err)
	}
	return req, nil
}

// GetRequest loads a single request. Non-admin callers only see their
// own.
func (s *Service) GetRequest(ctx context.Context, requestID, userID uint) (*models.TopupRequest, error) {
	req, err := s.store.TopupRequests().GetByID(ctx, requestID)
	if err != nil {
		return nil, errors.ErrRequestNotFound
	}
	if req.UserID != userID {
		return nil, errors.ErrNotRequestOwner
	}
	return req, nil
}

// ListUserRequests pages through the user's requests, newest first.
func (s *Service) ListUserRequests(ctx context.Context, userID uint, limit, offset int) ([]models.TopupRequest, int64, error) {
	return s.store.TopupRequests().ListByUser(ctx, userID, normalizeLimit(limit), offset)
}

// ListPending is the admin review queue.
func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]models.TopupRequest, int64, error) {
	return s.store.TopupRequests().ListPending(ctx, normalizeLimit(limit), offset)
}

// TopupByCard charges a tokenized card and credits the wallet through
// the ledger engine. The charge happens first; a credit that then
// fails leaves the charge id in the logs for manual reversal.
func (s *Service) TopupByCard(ctx context.Context, userID uint, amount money.Amount, cardToken string) (*ledger.Result, error) {
	if s.gateway == nil {
		return nil, errors.ErrInvalidTopupMethod
	}
	if err := validateRequestAmount(amount); err != nil {
		return nil, err
	}

	wallet, err := s.store.Wallets().GetByUserID(ctx, userID)
	if err != nil || !wallet.IsActive {
		return nil, errors.ErrWalletNotFound
	}

	chargeID, err := s.gateway.Charge(ctx, amount, wallet.Currency, cardToken, fmt.Sprintf("CampusPay top-up for user %d", userID))
	if err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Msg("card charge failed")
		return nil, errors.ErrCardChargeFailed
	}

	result, err := s.engine.ProcessTopup(ctx, userID, amount, "Card top-up", models.JSON{
		"charge_id": chargeID,
		"method":    models.TopupMethodCard,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Uint("user_id", userID).
			Str("charge_id", chargeID).
			Msg("wallet credit failed after successful card charge")
		return nil, err
	}
	return result, nil
}

func validateRequestAmount(amount money.Amount) error {
	if !amount.IsPositive() {
		return errors.ErrInvalidAmount
	}
	if amount.LessThan(MinRequestAmount) || amount.GreaterThan(MaxRequestAmount) {
		return errors.ErrAmountOutOfRange
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
