package repository

import (
	"context"

	"flamtunes/model"

	"gorm.io/gorm"
)

// SegmentRepository is the data access interface for generated voice
// segments.
type SegmentRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Segment, error)
	List(ctx context.Context, segType model.SegmentType, limit int) ([]*model.Segment, error)
}

// gormSegmentRepository is the GORM implementation.
type gormSegmentRepository struct {
	db *gorm.DB
}

// NewGormSegmentRepository creates a GORM segment repository.
func NewGormSegmentRepository(db *gorm.DB) SegmentRepository {
	return &gormSegmentRepository{db: db}
}

func (r *gormSegmentRepository) GetByID(ctx context.Context, id int64) (*model.Segment, error) {
	var seg model.Segment
	err := r.db.WithContext(ctx).Preload("AIHost").First(&seg, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &seg, nil
}

// List returns segments newest first, hosts preloaded. An empty segType
// returns every classification.
func (r *gormSegmentRepository) List(ctx context.Context, segType model.SegmentType, limit int) ([]*model.Segment, error) {
	var segs []*model.Segment
	q := r.db.WithContext(ctx).
		Preload("AIHost").
		Order("created_at DESC").
		Limit(limit)
	if segType != "" {
		q = q.Where("type = ?", segType)
	}
	err := q.Find(&segs).Error
	return segs, err
}
