package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"flamtunes/model"
)

// ReviewUpdate captures the submission row mutation applied by the review
// workflow. ApprovedTrackID carries the final reference value: the newly
// created track when one was materialized, otherwise the previous value.
type ReviewUpdate struct {
	Status          model.SubmissionStatus
	ReviewedAt      time.Time
	ReviewedBy      string
	AdminNotes      string
	ApprovedTrackID *int64
}

// SubmissionRepository defines the interface for artist submission operations.
type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, sub *model.Submission) (int64, error)
	GetSubmissionByID(ctx context.Context, id int64) (*model.Submission, error)
	ListSubmissions(ctx context.Context) ([]*model.Submission, error)
	ListSubmissionsByProfile(ctx context.Context, profileID int64) ([]*model.Submission, error)
	UpdateReview(ctx context.Context, id int64, update ReviewUpdate) error
}

// mysqlSubmissionRepository implements SubmissionRepository for MySQL.
type mysqlSubmissionRepository struct {
	DB *sql.DB
}

// NewMySQLSubmissionRepository creates a new instance of mysqlSubmissionRepository.
func NewMySQLSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &mysqlSubmissionRepository{DB: db}
}

const submissionColumns = `id, artist_profile_id, artist_name, contact_name, contact_email, contact_phone,
	track_title, genre, release_date, bpm, mood_tags, storage_path, file_name, file_size,
	ownership_confirmed, permission_granted, rights_holder_name, additional_info,
	status, reviewed_at, reviewed_by, admin_notes, approved_track_id, created_at`

// CreateSubmission inserts a new submission row with status PENDING.
func (r *mysqlSubmissionRepository) CreateSubmission(ctx context.Context, sub *model.Submission) (int64, error) {
	query := `INSERT INTO artist_submissions
	           (artist_profile_id, artist_name, contact_name, contact_email, contact_phone,
	            track_title, genre, release_date, bpm, mood_tags, storage_path, file_name, file_size,
	            ownership_confirmed, permission_granted, rights_holder_name, additional_info, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, query,
		sub.ArtistProfileID, sub.ArtistName, sub.ContactName, sub.ContactEmail, nullable(sub.ContactPhone),
		sub.TrackTitle, nullable(sub.Genre), sub.ReleaseDate, nullableInt(sub.BPM), sub.MoodTags,
		sub.StoragePath, sub.FileName, sub.FileSize,
		sub.OwnershipConfirmed, sub.PermissionGranted,
		nullable(sub.RightsHolderName), nullable(sub.AdditionalInfo), model.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateSubmission: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateSubmission: %w", err)
	}
	return id, nil
}

// GetSubmissionByID retrieves a submission by its ID. Returns (nil, nil) when absent.
func (r *mysqlSubmissionRepository) GetSubmissionByID(ctx context.Context, id int64) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM artist_submissions WHERE id = ?`
	sub, err := scanSubmission(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan submission by ID %d: %w", id, err)
	}
	return sub, nil
}

// ListSubmissions retrieves all submissions, newest first.
func (r *mysqlSubmissionRepository) ListSubmissions(ctx context.Context) ([]*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM artist_submissions ORDER BY created_at DESC`
	return r.querySubmissions(ctx, query)
}

// ListSubmissionsByProfile retrieves the submissions owned by one artist
// profile, newest first.
func (r *mysqlSubmissionRepository) ListSubmissionsByProfile(ctx context.Context, profileID int64) ([]*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM artist_submissions WHERE artist_profile_id = ? ORDER BY created_at DESC`
	return r.querySubmissions(ctx, query, profileID)
}

func (r *mysqlSubmissionRepository) querySubmissions(ctx context.Context, query string, args ...interface{}) ([]*model.Submission, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	subs := make([]*model.Submission, 0)
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		subs = append(subs, sub)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in querySubmissions: %w", err)
	}

	return subs, nil
}

// UpdateReview applies a reviewer's decision to the submission row.
func (r *mysqlSubmissionRepository) UpdateReview(ctx context.Context, id int64, update ReviewUpdate) error {
	query := `UPDATE artist_submissions
	           SET status = ?, reviewed_at = ?, reviewed_by = ?, admin_notes = ?, approved_track_id = ?
	           WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, query,
		update.Status, update.ReviewedAt, update.ReviewedBy, nullable(update.AdminNotes),
		update.ApprovedTrackID, id)
	if err != nil {
		return fmt.Errorf("failed to execute UpdateReview for submission %d: %w", id, err)
	}
	return nil
}

func scanSubmission(row rowScanner) (*model.Submission, error) {
	sub := &model.Submission{}
	var phone, genre, rightsHolder, additionalInfo, reviewedBy, adminNotes sql.NullString
	var bpm sql.NullInt64
	var reviewedAt sql.NullTime
	var releaseDate time.Time
	err := row.Scan(&sub.ID, &sub.ArtistProfileID, &sub.ArtistName, &sub.ContactName, &sub.ContactEmail, &phone,
		&sub.TrackTitle, &genre, &releaseDate, &bpm, &sub.MoodTags, &sub.StoragePath, &sub.FileName, &sub.FileSize,
		&sub.OwnershipConfirmed, &sub.PermissionGranted, &rightsHolder, &additionalInfo,
		&sub.Status, &reviewedAt, &reviewedBy, &adminNotes, &sub.ApprovedTrackID, &sub.CreatedAt)
	if err != nil {
		return nil, err
	}
	sub.ContactPhone = phone.String
	sub.Genre = genre.String
	sub.ReleaseDate = releaseDate.Format("2006-01-02")
	if bpm.Valid {
		v := int(bpm.Int64)
		sub.BPM = &v
	}
	sub.RightsHolderName = rightsHolder.String
	sub.AdditionalInfo = additionalInfo.String
	if reviewedAt.Valid {
		t := reviewedAt.Time
		sub.ReviewedAt = &t
	}
	sub.ReviewedBy = reviewedBy.String
	sub.AdminNotes = adminNotes.String
	return sub, nil
}
