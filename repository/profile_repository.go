package repository

import (
	"context"
	"database/sql"
	"fmt"

	"flamtunes/model"
)

// ProfileRepository defines the interface for artist profile operations.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *model.ArtistProfile) (int64, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*model.ArtistProfile, error)
	UpdateProfile(ctx context.Context, profile *model.ArtistProfile) error
}

// mysqlProfileRepository implements ProfileRepository for MySQL.
type mysqlProfileRepository struct {
	DB *sql.DB
}

// NewMySQLProfileRepository creates a new instance of mysqlProfileRepository.
func NewMySQLProfileRepository(db *sql.DB) ProfileRepository {
	return &mysqlProfileRepository{DB: db}
}

// CreateProfile adds a new artist profile.
func (r *mysqlProfileRepository) CreateProfile(ctx context.Context, profile *model.ArtistProfile) (int64, error) {
	query := `INSERT INTO artist_profiles (user_id, artist_name, contact_name, contact_phone, bio, website)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, query,
		profile.UserID, profile.ArtistName, profile.ContactName,
		nullable(profile.ContactPhone), nullable(profile.Bio), nullable(profile.Website))
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateProfile: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateProfile: %w", err)
	}
	return id, nil
}

// GetProfileByUserID retrieves the profile owned by a user account.
// Returns (nil, nil) when absent.
func (r *mysqlProfileRepository) GetProfileByUserID(ctx context.Context, userID int64) (*model.ArtistProfile, error) {
	query := `SELECT id, user_id, artist_name, contact_name, contact_phone, bio, website, is_verified, created_at, updated_at
	           FROM artist_profiles WHERE user_id = ?`
	row := r.DB.QueryRowContext(ctx, query, userID)

	profile := &model.ArtistProfile{}
	var phone, bio, website sql.NullString
	err := row.Scan(&profile.ID, &profile.UserID, &profile.ArtistName, &profile.ContactName,
		&phone, &bio, &website, &profile.IsVerified, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan profile for user %d: %w", userID, err)
	}
	profile.ContactPhone = phone.String
	profile.Bio = bio.String
	profile.Website = website.String
	return profile, nil
}

// UpdateProfile updates the mutable fields of a profile by user id.
func (r *mysqlProfileRepository) UpdateProfile(ctx context.Context, profile *model.ArtistProfile) error {
	query := `UPDATE artist_profiles
	           SET artist_name = ?, contact_name = ?, contact_phone = ?, bio = ?, website = ?
	           WHERE user_id = ?`
	_, err := r.DB.ExecContext(ctx, query,
		profile.ArtistName, profile.ContactName,
		nullable(profile.ContactPhone), nullable(profile.Bio), nullable(profile.Website),
		profile.UserID)
	if err != nil {
		return fmt.Errorf("failed to execute UpdateProfile for user %d: %w", profile.UserID, err)
	}
	return nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
