package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"campuspay/internal/models"
)

type topupRequestRepository struct {
	db *gorm.DB
}

func NewTopupRequestRepository(db *gorm.DB) TopupRequestRepository {
	return &topupRequestRepository{db: db}
}

func (r *topupRequestRepository) Create(ctx context.Context, req *models.TopupRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create top-up request: %w", translateError(err, ErrTopupRequestNotFound))
	}
	return nil
}

func (r *topupRequestRepository) GetByID(ctx context.Context, id uint) (*models.TopupRequest, error) {
	var req models.TopupRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, translateError(err, ErrTopupRequestNotFound)
	}
	return &req, nil
}

func (r *topupRequestRepository) Update(ctx context.Context, req *models.TopupRequest) error {
	if err := r.db.WithContext(ctx).Save(req).Error; err != nil {
		return fmt.Errorf("failed to update top-up request: %w", err)
	}
	return nil
}

func (r *topupRequestRepository) UpdatePending(ctx context.Context, req *models.TopupRequest) error {
	result := r.db.WithContext(ctx).Model(&models.TopupRequest{}).
		Where("id = ? AND status = ?", req.ID, models.TopupRequestStatusPending).
		Updates(map[string]interface{}{
			"status":           req.Status,
			"processed_by":     req.ProcessedBy,
			"processed_at":     req.ProcessedAt,
			"rejection_reason": req.RejectionReason,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update top-up request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNoPendingRequest
	}
	return nil
}

func (r *topupRequestRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.TopupRequest, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID), limit, offset)
}

func (r *topupRequestRepository) ListPending(ctx context.Context, limit, offset int) ([]models.TopupRequest, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("status = ?", models.TopupRequestStatusPending), limit, offset)
}

func (r *topupRequestRepository) list(ctx context.Context, q *gorm.DB, limit, offset int) ([]models.TopupRequest, int64, error) {
	var reqs []models.TopupRequest
	var total int64

	q = q.Model(&models.TopupRequest{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count top-up requests: %w", err)
	}
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reqs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list top-up requests: %w", err)
	}
	return reqs, total, nil
}
