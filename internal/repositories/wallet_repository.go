package repositories

import (
	"context"

	"campuspay/internal/models"
)

// WalletRepository defines wallet persistence operations.
type WalletRepository interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	GetByID(ctx context.Context, id uint) (*models.Wallet, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error)

	// GetActiveByUserIDForUpdate loads the active wallet with a row
	// lock when called inside a store transaction, serializing
	// concurrent ledger operations on the same wallet.
	GetActiveByUserIDForUpdate(ctx context.Context, userID uint) (*models.Wallet, error)

	Update(ctx context.Context, wallet *models.Wallet) error
	Deactivate(ctx context.Context, walletID uint) error
}
