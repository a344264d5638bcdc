package repositories

import (
	"context"

	"campuspay/internal/models"
)

// TransactionRepository defines transaction persistence operations.
// Delete exists only for the compensation path; committed records are
// otherwise append-only.
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*models.Transaction, error)
	Update(ctx context.Context, txn *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, int64, error)
}
