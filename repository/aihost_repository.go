package repository

import (
	"context"

	"flamtunes/model"

	"gorm.io/gorm"
)

// AIHostRepository is the data access interface for AI host personas.
type AIHostRepository interface {
	Create(ctx context.Context, host *model.AIHost) error
	GetByID(ctx context.Context, id int64) (*model.AIHost, error)
	ListAll(ctx context.Context) ([]*model.AIHost, error)
	Update(ctx context.Context, host *model.AIHost) error
	Delete(ctx context.Context, id int64) error
}

// gormAIHostRepository is the GORM implementation.
type gormAIHostRepository struct {
	db *gorm.DB
}

// NewGormAIHostRepository creates a GORM AI host repository.
func NewGormAIHostRepository(db *gorm.DB) AIHostRepository {
	return &gormAIHostRepository{db: db}
}

func (r *gormAIHostRepository) Create(ctx context.Context, host *model.AIHost) error {
	return r.db.WithContext(ctx).Create(host).Error
}

func (r *gormAIHostRepository) GetByID(ctx context.Context, id int64) (*model.AIHost, error) {
	var host model.AIHost
	err := r.db.WithContext(ctx).First(&host, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &host, nil
}

func (r *gormAIHostRepository) ListAll(ctx context.Context) ([]*model.AIHost, error) {
	var hosts []*model.AIHost
	err := r.db.WithContext(ctx).Order("name ASC").Find(&hosts).Error
	return hosts, err
}

func (r *gormAIHostRepository) Update(ctx context.Context, host *model.AIHost) error {
	return r.db.WithContext(ctx).Save(host).Error
}

func (r *gormAIHostRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.AIHost{}, id).Error
}
