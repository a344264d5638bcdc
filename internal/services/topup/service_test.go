package topup

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuspay/internal/models"
	"campuspay/internal/money"
	"campuspay/internal/repositories"
	"campuspay/internal/services/ledger"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	repositories.Store

	wallets map[uint]*models.Wallet // keyed by user ID
	reqs    map[uint]*models.TopupRequest
	nextID  uint

	// requestReadHook fires once, after the next request read returns
	// its copy, so a test can change the stored row between a status
	// check and the write that follows it.
	requestReadHook func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		wallets: make(map[uint]*models.Wallet),
		reqs:    make(map[uint]*models.TopupRequest),
	}
}

func (s *fakeStore) Wallets() repositories.WalletRepository             { return fakeWallets{s} }
func (s *fakeStore) TopupRequests() repositories.TopupRequestRepository { return fakeReqs{s} }

type fakeWallets struct{ s *fakeStore }

func (f fakeWallets) Create(ctx context.Context, w *models.Wallet) error { return nil }
func (f fakeWallets) GetByID(ctx context.Context, id uint) (*models.Wallet, error) {
	return nil, repositories.ErrWalletNotFound
}
func (f fakeWallets) GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	w, ok := f.s.wallets[userID]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	return w, nil
}
func (f fakeWallets) GetActiveByUserIDForUpdate(ctx context.Context, userID uint) (*models.Wallet, error) {
	return f.GetByUserID(ctx, userID)
}
func (f fakeWallets) Update(ctx context.Context, w *models.Wallet) error  { return nil }
func (f fakeWallets) Deactivate(ctx context.Context, walletID uint) error { return nil }

type fakeReqs struct{ s *fakeStore }

func (f fakeReqs) Create(ctx context.Context, req *models.TopupRequest) error {
	f.s.nextID++
	req.ID = f.s.nextID
	cp := *req
	f.s.reqs[req.ID] = &cp
	return nil
}

func (f fakeReqs) GetByID(ctx context.Context, id uint) (*models.TopupRequest, error) {
	req, ok := f.s.reqs[id]
	if !ok {
		return nil, repositories.ErrTopupRequestNotFound
	}
	cp := *req
	if hook := f.s.requestReadHook; hook != nil {
		f.s.requestReadHook = nil
		hook()
	}
	return &cp, nil
}

func (f fakeReqs) Update(ctx context.Context, req *models.TopupRequest) error {
	if _, ok := f.s.reqs[req.ID]; !ok {
		return repositories.ErrTopupRequestNotFound
	}
	cp := *req
	f.s.reqs[req.ID] = &cp
	return nil
}

func (f fakeReqs) UpdatePending(ctx context.Context, req *models.TopupRequest) error {
	stored, ok := f.s.reqs[req.ID]
	if !ok || stored.Status != models.TopupRequestStatusPending {
		return repositories.ErrNoPendingRequest
	}
	cp := *req
	f.s.reqs[req.ID] = &cp
	return nil
}

func (f fakeReqs) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.TopupRequest, int64, error) {
	var out []models.TopupRequest
	for _, req := range f.s.reqs {
		if req.UserID == userID {
			out = append(out, *req)
		}
	}
	return out, int64(len(out)), nil
}

func (f fakeReqs) ListPending(ctx context.Context, limit, offset int) ([]models.TopupRequest, int64, error) {
	var out []models.TopupRequest
	for _, req := range f.s.reqs {
		if req.Status == models.TopupRequestStatusPending {
			out = append(out, *req)
		}
	}
	return out, int64(len(out)), nil
}

type fakeEngine struct {
	lastMetadata models.JSON
	err          error
}

func (f *fakeEngine) ProcessTopup(ctx context.Context, userID uint, amount money.Amount, description string, metadata models.JSON) (*ledger.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastMetadata = metadata
	return &ledger.Result{
		Transaction: &models.Transaction{
			UserID:      userID,
			Type:        models.TransactionTypeTopup,
			Amount:      amount,
			Status:      models.TransactionStatusCompleted,
			Description: description,
			Metadata:    metadata,
		},
	}, nil
}

type fakeGateway struct {
	chargeID string
	err      error
}

func (f *fakeGateway) Charge(ctx context.Context, amount money.Amount, currency, token, description string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.chargeID, nil
}

func newTestService(store *fakeStore, engine Engine, gateway CardGateway) *Service {
	if engine == nil {
		engine = &fakeEngine{}
	}
	return NewService(store, engine, gateway, zerolog.Nop(), WithClock(func() time.Time { return testNow }))
}

func addWallet(store *fakeStore, userID uint, active bool) {
	store.wallets[userID] = &models.Wallet{
		ID:       userID,
		UserID:   userID,
		Currency: "IDR",
		IsActive: active,
	}
}

func TestCreateRequest(t *testing.T) {
	t.Run("creates a pending request with a reference", func(t *testing.T) {
		store := newFakeStore()
		addWallet(store, 1, true)
		svc := newTestService(store, nil, nil)

		req, err := svc.CreateRequest(context.Background(), 1, money.New(50_000), models.TopupMethodBankTransfer, "March allowance")
		require.NoError(t, err)

		assert.Equal(t, models.TopupRequestStatusPending, req.Status)
		assert.Equal(t, uint(1), req.WalletID)
		assert.Equal(t, "March allowance", req.Note)
		assert.Contains(t, req.ReferenceNumber, "TPR-20250315-")
	})

	t.Run("amount bounds", func(t *testing.T) {
		tests := []struct {
			name    string
			amount  money.Amount
			wantErr error
		}{
			{"zero", money.Zero(), ErrInvalidAmount},
			{"below minimum", money.New(999), ErrAmountOutOfRange},
			{"at maximum", money.New(50_000_000), nil},
			{"above maximum", money.New(50_000_001), ErrAmountOutOfRange},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store := newFakeStore()
				addWallet(store, 1, true)
				svc := newTestService(store, nil, nil)

				_, err := svc.CreateRequest(context.Background(), 1, tt.amount, models.TopupMethodCash, "")
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		store := newFakeStore()
		addWallet(store, 1, true)
		svc := newTestService(store, nil, nil)

		_, err := svc.CreateRequest(context.Background(), 1, money.New(50_000), "crypto", "")
		assert.ErrorIs(t, err, ErrInvalidTopupMethod)
	})

	t.Run("inactive wallet", func(t *testing.T) {
		store := newFakeStore()
		addWallet(store, 1, false)
		svc := newTestService(store, nil, nil)

		_, err := svc.CreateRequest(context.Background(), 1, money.New(50_000), models.TopupMethodCash, "")
		assert.ErrorIs(t, err, ErrWalletNotFound)
	})
}

func TestCancelRequest(t *testing.T) {
	setup := func(t *testing.T) (*Service, *models.TopupRequest) {
		store := newFakeStore()
		addWallet(store, 1, true)
		svc := newTestService(store, nil, nil)
		req, err := svc.CreateRequest(context.Background(), 1, money.New(50_000), models.TopupMethodCash, "")
		require.NoError(t, err)
		return svc, req
	}

	t.Run("owner cancels a pending request", func(t *testing.T) {
		svc, req := setup(t)

		cancelled, err := svc.CancelRequest(context.Background(), req.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, models.TopupRequestStatusCancelled, cancelled.Status)
	})

	t.Run("another user cannot cancel", func(t *testing.T) {
		svc, req := setup(t)

		_, err := svc.CancelRequest(context.Background(), req.ID, 2)
		assert.ErrorIs(t, err, ErrNotRequestOwner)
	})

	t.Run("cancel is single-use", func(t *testing.T) {
		svc, req := setup(t)

		_, err := svc.CancelRequest(context.Background(), req.ID, 1)
		require.NoError(t, err)

		_, err = svc.CancelRequest(context.Background(), req.ID, 1)
		assert.ErrorIs(t, err, ErrRequestNotPending)
	})

	t.Run("unknown request", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.CancelRequest(context.Background(), 9999, 1)
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})

	t.Run("cancel loses to a review that commits first", func(t *testing.T) {
		store := newFakeStore()
		addWallet(store, 1, true)
		svc := newTestService(store, nil, nil)
		req, err := svc.CreateRequest(context.Background(), 1, money.New(50_000), models.TopupMethodCash, "")
		require.NoError(t, err)

		// An approval lands after the cancel has read the request as
		// PENDING but before it writes.
		store.requestReadHook = func() {
			store.reqs[req.ID].Status = models.TopupRequestStatusApproved
		}

		_, err = svc.CancelRequest(context.Background(), req.ID, 1)
		assert.ErrorIs(t, err, ErrRequestNotPending)
		assert.Equal(t, models.TopupRequestStatusApproved, store.reqs[req.ID].Status)
	})
}

func TestListPending(t *testing.T) {
	store := newFakeStore()
	addWallet(store, 1, true)
	svc := newTestService(store, nil, nil)

	first, err := svc.CreateRequest(context.Background(), 1, money.New(50_000), models.TopupMethodCash, "")
	require.NoError(t, err)
	_, err = svc.CreateRequest(context.Background(), 1, money.New(60_000), models.TopupMethodBankTransfer, "")
	require.NoError(t, err)

	_, err = svc.CancelRequest(context.Background(), first.ID, 1)
	require.NoError(t, err)

	pending, total, err := svc.ListPending(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, pending, 1)
	assert.True(t, pending[0].Amount.Equal(money.New(60_000)))
}

func TestTopupByCard(t *testing.T) {
	t.Run("charges the card then credits through the engine", func(t *testing.T) {
		store := newFakeStore()
		addWallet(store, 1, true)
		engine := &fakeEngine{}
		svc := newTestService(store, engine, &fakeGateway{chargeID: "ch_123"})

		result, err := svc.TopupByCard(context.Background(), 1, money.New(75_000), "tok_visa")
		require.NoError(t, err)

		assert.Equal(t, models.TransactionTypeTopup, result.Transaction.Type)
		assert.Equal(t, "ch_123", engine.lastMetadata["charge_id"])
		assert.Equal(t, models.TopupMethodCard, engine.lastMetadata["method"])
	})

	t.Run("declined charge surfaces as a domain error", func(t *testing.T) {
		store := newFakeStore()
		addWallet(store, 1, true)
		svc := newTestService(store, nil, &fakeGateway{err: assert.AnError})

		_, err := svc.TopupByCard(context.Background(), 1, money.New(75_000), "tok_visa")
		assert.ErrorIs(t, err, ErrCardChargeFailed)
	})

	t.Run("no gateway configured", func(t *testing.T) {
		store := newFakeStore()
		addWallet(store, 1, true)
		svc := newTestService(store, nil, nil)

		_, err := svc.TopupByCard(context.Background(), 1, money.New(75_000), "tok_visa")
		assert.ErrorIs(t, err, ErrInvalidTopupMethod)
	})
}
