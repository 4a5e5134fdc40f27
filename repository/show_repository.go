package repository

import (
	"context"

	"flamtunes/model"

	"gorm.io/gorm"
)

// ShowRepository is the data access interface for scheduled shows.
type ShowRepository interface {
	Create(ctx context.Context, show *model.Show) error
	GetByID(ctx context.Context, id int64) (*model.Show, error)
	ListActive(ctx context.Context) ([]*model.Show, error)
	ListAll(ctx context.Context) ([]*model.Show, error)
	Update(ctx context.Context, show *model.Show) error
	Delete(ctx context.Context, id int64) error
}

// gormShowRepository is the GORM implementation.
type gormShowRepository struct {
	db *gorm.DB
}

// NewGormShowRepository creates a GORM show repository.
func NewGormShowRepository(db *gorm.DB) ShowRepository {
	return &gormShowRepository{db: db}
}

func (r *gormShowRepository) Create(ctx context.Context, show *model.Show) error {
	return r.db.WithContext(ctx).Create(show).Error
}

func (r *gormShowRepository) GetByID(ctx context.Context, id int64) (*model.Show, error) {
	var show model.Show
	err := r.db.WithContext(ctx).Preload("AIHost").First(&show, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &show, nil
}

// ListActive returns active shows ordered by start time, hosts preloaded.
func (r *gormShowRepository) ListActive(ctx context.Context) ([]*model.Show, error) {
	var shows []*model.Show
	err := r.db.WithContext(ctx).
		Preload("AIHost").
		Where("is_active = ?", true).
		Order("start_time ASC").
		Find(&shows).Error
	return shows, err
}

func (r *gormShowRepository) ListAll(ctx context.Context) ([]*model.Show, error) {
	var shows []*model.Show
	err := r.db.WithContext(ctx).
		Preload("AIHost").
		Order("start_time ASC").
		Find(&shows).Error
	return shows, err
}

func (r *gormShowRepository) Update(ctx context.Context, show *model.Show) error {
	return r.db.WithContext(ctx).Save(show).Error
}

func (r *gormShowRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Show{}, id).Error
}
