package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"flamtunes/logger"
	"flamtunes/model"
	"flamtunes/repository"
	"flamtunes/storage"
)

// ValidationError is a client error detected before any mutation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IngestCommand is an administrator's direct track upload.
type IngestCommand struct {
	File        io.Reader
	FileName    string
	FileSize    int64
	ContentType string

	Title      string
	Artist     string
	Genre      string
	BPM        *int
	MoodTags   string // comma separated
	IsJingle   bool
	IsBedMusic bool
}

// Service owns the track library: direct admin uploads and deletions.
type Service struct {
	tracks       repository.TrackRepository
	blobs        storage.Store
	tracksBucket string
	now          func() time.Time
}

// NewService wires the library workflows.
func NewService(tracks repository.TrackRepository, blobs storage.Store, tracksBucket string) *Service {
	return &Service{
		tracks:       tracks,
		blobs:        blobs,
		tracksBucket: tracksBucket,
		now:          time.Now,
	}
}

// Ingest stores an uploaded audio blob in the published bucket and inserts
// the library row, deleting the blob again if the insert fails.
func (s *Service) Ingest(ctx context.Context, cmd IngestCommand) (*model.Track, error) {
	if cmd.File == nil {
		return nil, &ValidationError{Msg: "No file provided"}
	}

	key := storage.ObjectKey("", cmd.FileName, s.now())
	if err := s.blobs.Upload(ctx, s.tracksBucket, key, cmd.File, cmd.FileSize, cmd.ContentType); err != nil {
		return nil, fmt.Errorf("failed to upload track file: %w", err)
	}

	track := &model.Track{
		StoragePath: key,
		Title:       strings.TrimSpace(cmd.Title),
		Artist:      strings.TrimSpace(cmd.Artist),
		Genre:       strings.TrimSpace(cmd.Genre),
		BPM:         cmd.BPM,
		MoodTags:    model.SplitMoodTags(cmd.MoodTags),
		IsJingle:    cmd.IsJingle,
		IsBedMusic:  cmd.IsBedMusic,
	}

	id, err := s.tracks.CreateTrack(ctx, track)
	if err != nil {
		if rmErr := s.blobs.Remove(ctx, s.tracksBucket, key); rmErr != nil {
			logger.Error("Failed to clean up track blob after insert failure",
				logger.String("bucket", s.tracksBucket),
				logger.String("key", key),
				logger.ErrorField(rmErr))
		}
		return nil, fmt.Errorf("failed to create track record: %w", err)
	}
	track.ID = id
	track.CreatedAt = s.now()

	logger.Info("Track ingested",
		logger.Int64("trackId", id),
		logger.String("url", s.blobs.PublicURL(s.tracksBucket, key)),
		logger.Bool("isJingle", cmd.IsJingle),
		logger.Bool("isBedMusic", cmd.IsBedMusic))

	return track, nil
}

// Delete removes a track row and its stored audio. The blob delete runs
// first only when the row lookup succeeds; a missing row is reported to the
// caller without touching storage.
func (s *Service) Delete(ctx context.Context, id int64) error {
	track, err := s.tracks.GetTrackByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load track %d: %w", id, err)
	}
	if track == nil {
		return ErrTrackNotFound
	}

	if err := s.tracks.DeleteTrack(ctx, id); err != nil {
		return fmt.Errorf("failed to delete track %d: %w", id, err)
	}

	// Row is gone; the blob delete is best-effort cleanup.
	if err := s.blobs.Remove(ctx, s.tracksBucket, track.StoragePath); err != nil {
		logger.Error("Failed to remove track blob",
			logger.String("key", track.StoragePath),
			logger.ErrorField(err))
	}

	return nil
}

// ErrTrackNotFound means the referenced track does not exist.
var ErrTrackNotFound = errors.New("track not found")
