package repository

import (
	"context"
	"time"

	"flamtunes/model"

	"gorm.io/gorm"
)

// NowPlayingRepository is the data access interface for playback history.
//
// CloseOpen followed by Create is the orchestrator's update-then-insert pair.
// There is no cross-call isolation between the two statements; the
// orchestrator is expected to call the ingestion endpoint one item at a time.
type NowPlayingRepository interface {
	CloseOpen(ctx context.Context, endedAt time.Time) error
	Create(ctx context.Context, entry *model.NowPlaying) error
	GetCurrent(ctx context.Context) (*model.NowPlaying, error)
	ListHistory(ctx context.Context, limit int) ([]*model.NowPlaying, error)
}

// gormNowPlayingRepository is the GORM implementation.
type gormNowPlayingRepository struct {
	db *gorm.DB
}

// NewGormNowPlayingRepository creates a GORM playback history repository.
func NewGormNowPlayingRepository(db *gorm.DB) NowPlayingRepository {
	return &gormNowPlayingRepository{db: db}
}

// CloseOpen stamps ended_at on any record still open.
func (r *gormNowPlayingRepository) CloseOpen(ctx context.Context, endedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.NowPlaying{}).
		Where("ended_at IS NULL").
		Update("ended_at", endedAt).Error
}

func (r *gormNowPlayingRepository) Create(ctx context.Context, entry *model.NowPlaying) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetCurrent returns the most recent playback record, show preloaded.
// Returns (nil, nil) when the history is empty.
func (r *gormNowPlayingRepository) GetCurrent(ctx context.Context) (*model.NowPlaying, error) {
	var entry model.NowPlaying
	err := r.db.WithContext(ctx).
		Preload("Show").
		Order("started_at DESC").
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// ListHistory returns the latest playback records, newest first.
func (r *gormNowPlayingRepository) ListHistory(ctx context.Context, limit int) ([]*model.NowPlaying, error) {
	var entries []*model.NowPlaying
	err := r.db.WithContext(ctx).
		Preload("Show").
		Order("started_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
