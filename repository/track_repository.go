package repository

import (
	"context"
	"database/sql"
	"fmt"

	"flamtunes/model"
)

// TrackRepository defines the interface for library track operations.
type TrackRepository interface {
	CreateTrack(ctx context.Context, track *model.Track) (int64, error)
	GetTrackByID(ctx context.Context, id int64) (*model.Track, error)
	ListTracks(ctx context.Context) ([]*model.Track, error)
	DeleteTrack(ctx context.Context, id int64) error
}

// mysqlTrackRepository implements TrackRepository for MySQL.
type mysqlTrackRepository struct {
	DB *sql.DB
}

// NewMySQLTrackRepository creates a new instance of mysqlTrackRepository.
func NewMySQLTrackRepository(db *sql.DB) TrackRepository {
	return &mysqlTrackRepository{DB: db}
}

const trackColumns = `id, storage_path, title, artist, genre, bpm, mood_tags, is_jingle, is_bed_music, created_at`

// CreateTrack adds a new track to the library.
func (r *mysqlTrackRepository) CreateTrack(ctx context.Context, track *model.Track) (int64, error) {
	query := `INSERT INTO tracks (storage_path, title, artist, genre, bpm, mood_tags, is_jingle, is_bed_music)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, query,
		track.StoragePath, nullable(track.Title), nullable(track.Artist), nullable(track.Genre),
		nullableInt(track.BPM), track.MoodTags, track.IsJingle, track.IsBedMusic)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateTrack: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateTrack: %w", err)
	}
	return id, nil
}

// GetTrackByID retrieves a track by its ID. Returns (nil, nil) when absent.
func (r *mysqlTrackRepository) GetTrackByID(ctx context.Context, id int64) (*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE id = ?`
	track, err := scanTrack(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan track by ID %d: %w", id, err)
	}
	return track, nil
}

// ListTracks retrieves all library tracks, newest first.
func (r *mysqlTrackRepository) ListTracks(ctx context.Context) ([]*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	tracks := make([]*model.Track, 0)
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track in ListTracks: %w", err)
		}
		tracks = append(tracks, track)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in ListTracks: %w", err)
	}

	return tracks, nil
}

// DeleteTrack removes a track row.
func (r *mysqlTrackRepository) DeleteTrack(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM tracks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to execute DeleteTrack for ID %d: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrack(row rowScanner) (*model.Track, error) {
	track := &model.Track{}
	var title, artist, genre sql.NullString
	var bpm sql.NullInt64
	err := row.Scan(&track.ID, &track.StoragePath, &title, &artist, &genre,
		&bpm, &track.MoodTags, &track.IsJingle, &track.IsBedMusic, &track.CreatedAt)
	if err != nil {
		return nil, err
	}
	track.Title = title.String
	track.Artist = artist.String
	track.Genre = genre.String
	if bpm.Valid {
		v := int(bpm.Int64)
		track.BPM = &v
	}
	return track, nil
}

// nullableInt maps a nil pointer to SQL NULL.
func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
