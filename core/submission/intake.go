package submission

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"flamtunes/logger"
	"flamtunes/model"
	"flamtunes/storage"
)

// SubmitCommand is the validated-per-field intake request from an
// authenticated artist.
type SubmitCommand struct {
	File        io.Reader
	FileName    string
	FileSize    int64
	ContentType string

	ArtistName   string // defaults to the profile's artist name
	ContactName  string // defaults to the profile's contact name
	ContactPhone string

	TrackTitle  string
	Genre       string
	ReleaseDate string // YYYY-MM-DD, must not be in the future
	BPM         *int
	MoodTags    string // comma separated

	OwnershipConfirmed bool
	PermissionGranted  bool
	RightsHolderName   string
	AdditionalInfo     string
}

// Submit validates and stores a new artist submission: blob first, row
// second, with a compensating blob delete if the row insert fails. The
// created submission starts in status PENDING.
func (s *Service) Submit(ctx context.Context, artist *model.ArtistProfile, contactEmail string, cmd SubmitCommand) (*model.Submission, error) {
	artistName := strings.TrimSpace(cmd.ArtistName)
	if artistName == "" {
		artistName = artist.ArtistName
	}
	contactName := strings.TrimSpace(cmd.ContactName)
	if contactName == "" {
		contactName = artist.ContactName
	}
	contactPhone := strings.TrimSpace(cmd.ContactPhone)
	if contactPhone == "" {
		contactPhone = artist.ContactPhone
	}

	// Validation order matters: each check short-circuits, and nothing is
	// written until all of them pass.
	if cmd.File == nil {
		return nil, invalid("Audio file is required")
	}
	if artistName == "" || contactName == "" || contactEmail == "" ||
		strings.TrimSpace(cmd.TrackTitle) == "" || strings.TrimSpace(cmd.ReleaseDate) == "" {
		return nil, invalid("Missing required fields")
	}
	if !cmd.OwnershipConfirmed || !cmd.PermissionGranted {
		return nil, invalid("Ownership and permission must be confirmed")
	}
	releaseDate, err := time.Parse("2006-01-02", strings.TrimSpace(cmd.ReleaseDate))
	if err != nil {
		return nil, invalid("Invalid release date, expected YYYY-MM-DD")
	}
	// Compare calendar dates, not instants: the clock may run in any zone
	// and Truncate would snap to a UTC day boundary instead of today.
	y, m, d := s.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if releaseDate.After(today) {
		return nil, invalid("Release date must be in the past (track must be released)")
	}
	if !strings.HasPrefix(cmd.ContentType, "audio/") {
		return nil, invalid("File must be an audio file")
	}
	if cmd.FileSize > MaxSubmissionSize {
		return nil, invalid("File size must be less than 50MB")
	}

	key := storage.ObjectKey("submissions/", cmd.FileName, s.now())
	if err := s.blobs.Upload(ctx, s.submissionsBucket, key, cmd.File, cmd.FileSize, cmd.ContentType); err != nil {
		return nil, fmt.Errorf("failed to upload submission file: %w", err)
	}

	sub := &model.Submission{
		ArtistProfileID:    &artist.ID,
		ArtistName:         artistName,
		ContactName:        contactName,
		ContactEmail:       contactEmail,
		ContactPhone:       contactPhone,
		TrackTitle:         strings.TrimSpace(cmd.TrackTitle),
		Genre:              strings.TrimSpace(cmd.Genre),
		ReleaseDate:        releaseDate.Format("2006-01-02"),
		BPM:                cmd.BPM,
		MoodTags:           model.SplitMoodTags(cmd.MoodTags),
		StoragePath:        key,
		FileName:           cmd.FileName,
		FileSize:           cmd.FileSize,
		OwnershipConfirmed: true,
		PermissionGranted:  true,
		RightsHolderName:   strings.TrimSpace(cmd.RightsHolderName),
		AdditionalInfo:     strings.TrimSpace(cmd.AdditionalInfo),
		Status:             model.StatusPending,
	}

	id, err := s.subs.CreateSubmission(ctx, sub)
	if err != nil {
		// The blob is already written; undo it so a failed intake leaves
		// nothing behind. The original failure is what the caller sees.
		if rmErr := s.blobs.Remove(ctx, s.submissionsBucket, key); rmErr != nil {
			logger.Error("Failed to clean up submission blob after insert failure",
				logger.String("bucket", s.submissionsBucket),
				logger.String("key", key),
				logger.ErrorField(rmErr))
		}
		return nil, fmt.Errorf("failed to create submission record: %w", err)
	}
	sub.ID = id
	sub.CreatedAt = s.now()

	logger.Info("Submission received",
		logger.Int64("submissionId", id),
		logger.String("artist", artistName),
		logger.String("title", sub.TrackTitle),
		logger.String("key", key))

	return sub, nil
}
