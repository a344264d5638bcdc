// Package repositories provides the data access layer. Each entity
// has an interface + GORM implementation pair; the Store aggregate
// scopes them to a shared transaction for the ledger engine.
package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrTopupRequestNotFound = errors.New("top-up request not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateKey         = errors.New("duplicate key")

	// ErrNoPendingRequest is returned by UpdatePending when the stored
	// row has already left PENDING.
	ErrNoPendingRequest = errors.New("top-up request is no longer pending")

	// ErrAtomicityNotSupported is returned by ExecuteInTransaction
	// when the backing store cannot scope multiple writes in one
	// transaction. Callers fall back to explicit compensation.
	ErrAtomicityNotSupported = errors.New("store does not support multi-entity transactions")
)

// Store bundles the entity repositories behind one handle.
// ExecuteInTransaction runs fn with every repository bound to the same
// database transaction; fn returning an error rolls everything back.
type Store interface {
	Wallets() WalletRepository
	Transactions() TransactionRepository
	TopupRequests() TopupRequestRepository
	Users() UserRepository

	ExecuteInTransaction(fn func(Store) error) error
}

type gormStore struct {
	db            *gorm.DB
	wallets       WalletRepository
	transactions  TransactionRepository
	topupRequests TopupRequestRepository
	users         UserRepository
}

// NewStore builds a Store over db. db may be a transaction handle, in
// which case ExecuteInTransaction nests via GORM savepoints.
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:            db,
		wallets:       NewWalletRepository(db),
		transactions:  NewTransactionRepository(db),
		topupRequests: NewTopupRequestRepository(db),
		users:         NewUserRepository(db),
	}
}

func (s *gormStore) Wallets() WalletRepository             { return s.wallets }
func (s *gormStore) Transactions() TransactionRepository   { return s.transactions }
func (s *gormStore) TopupRequests() TopupRequestRepository { return s.topupRequests }
func (s *gormStore) Users() UserRepository                 { return s.users }

func (s *gormStore) ExecuteInTransaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// translateError maps GORM errors to repository sentinels, keeping
// notFound for missing rows.
func translateError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	default:
		return err
	}
}
