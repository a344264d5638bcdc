package repositories

import (
	"context"

	"campuspay/internal/models"
)

// TopupRequestRepository defines top-up request persistence.
type TopupRequestRepository interface {
	Create(ctx context.Context, req *models.TopupRequest) error
	GetByID(ctx context.Context, id uint) (*models.TopupRequest, error)
	Update(ctx context.Context, req *models.TopupRequest) error
	// UpdatePending persists a status transition only while the stored
	// row is still PENDING, returning ErrNoPendingRequest otherwise.
	UpdatePending(ctx context.Context, req *models.TopupRequest) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.TopupRequest, int64, error)
	ListPending(ctx context.Context, limit, offset int) ([]models.TopupRequest, int64, error)
}
