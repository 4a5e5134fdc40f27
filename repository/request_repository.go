package repository

import (
	"context"

	"flamtunes/model"

	"gorm.io/gorm"
)

// RequestRepository is the data access interface for listener requests.
type RequestRepository interface {
	Create(ctx context.Context, req *model.Request) error
	GetByID(ctx context.Context, id int64) (*model.Request, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Request, error)
	Mark(ctx context.Context, id int64, status model.RequestStatus, handledBy string) (*model.Request, error)
}

// gormRequestRepository is the GORM implementation.
type gormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a GORM request repository.
func NewGormRequestRepository(db *gorm.DB) RequestRepository {
	return &gormRequestRepository{db: db}
}

func (r *gormRequestRepository) Create(ctx context.Context, req *model.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *gormRequestRepository) GetByID(ctx context.Context, id int64) (*model.Request, error) {
	var req model.Request
	err := r.db.WithContext(ctx).First(&req, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *gormRequestRepository) ListRecent(ctx context.Context, limit int) ([]*model.Request, error) {
	var reqs []*model.Request
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&reqs).Error
	return reqs, err
}

// Mark records the admin's handling decision and returns the updated row.
// Returns (nil, nil) when the request does not exist.
func (r *gormRequestRepository) Mark(ctx context.Context, id int64, status model.RequestStatus, handledBy string) (*model.Request, error) {
	res := r.db.WithContext(ctx).Model(&model.Request{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"handled_by": handledBy,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}
