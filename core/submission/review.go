package submission

import (
	"context"
	"fmt"

	"flamtunes/core/auth"
	"flamtunes/logger"
	"flamtunes/model"
	"flamtunes/repository"
	"flamtunes/storage"
)

// ReviewCommand is a reviewer's decision on one submission.
type ReviewCommand struct {
	SubmissionID int64
	Decision     model.SubmissionStatus // APPROVED, REJECTED or UNDER_REVIEW
	AdminNotes   string
}

// Review applies a reviewer's decision. The first successful approval copies
// the audio from the pending bucket into the published bucket and creates a
// library track; re-approving, rejecting or marking under review only updates
// the review metadata. Partial failures are compensated so that a track row
// exists and is referenced by the submission if and only if Review returned
// success for a first approval.
func (s *Service) Review(ctx context.Context, reviewer auth.Identity, cmd ReviewCommand) (*model.Submission, error) {
	if cmd.SubmissionID <= 0 {
		return nil, invalid("Submission ID is required")
	}
	if !model.ValidReviewStatus(cmd.Decision) {
		return nil, invalid("Invalid status. Must be APPROVED, REJECTED, or UNDER_REVIEW")
	}

	sub, err := s.subs.GetSubmissionByID(ctx, cmd.SubmissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submission %d: %w", cmd.SubmissionID, err)
	}
	if sub == nil {
		return nil, ErrNotFound
	}

	approvedTrackID := sub.ApprovedTrackID
	var createdTrackID int64
	var createdKey string

	if cmd.Decision == model.StatusApproved && sub.ApprovedTrackID == nil {
		trackID, key, err := s.materializeTrack(ctx, sub)
		if err != nil {
			return nil, err
		}
		approvedTrackID = &trackID
		createdTrackID = trackID
		createdKey = key
	}

	update := repository.ReviewUpdate{
		Status:          cmd.Decision,
		ReviewedAt:      s.now(),
		ReviewedBy:      reviewer.ReviewerRef(),
		AdminNotes:      cmd.AdminNotes,
		ApprovedTrackID: approvedTrackID,
	}
	if err := s.subs.UpdateReview(ctx, sub.ID, update); err != nil {
		// A track was possibly just created but will never be referenced;
		// remove it and its blob so no orphan survives. The update failure
		// is what the caller sees.
		if createdTrackID != 0 {
			if delErr := s.tracks.DeleteTrack(ctx, createdTrackID); delErr != nil {
				logger.Error("Failed to clean up track after review update failure",
					logger.Int64("trackId", createdTrackID),
					logger.ErrorField(delErr))
			}
			if rmErr := s.blobs.Remove(ctx, s.tracksBucket, createdKey); rmErr != nil {
				logger.Error("Failed to clean up published blob after review update failure",
					logger.String("key", createdKey),
					logger.ErrorField(rmErr))
			}
		}
		return nil, fmt.Errorf("failed to update submission %d: %w", sub.ID, err)
	}

	sub.Status = cmd.Decision
	reviewedAt := update.ReviewedAt
	sub.ReviewedAt = &reviewedAt
	sub.ReviewedBy = update.ReviewedBy
	sub.AdminNotes = cmd.AdminNotes
	sub.ApprovedTrackID = approvedTrackID

	logger.Info("Submission reviewed",
		logger.Int64("submissionId", sub.ID),
		logger.String("decision", string(cmd.Decision)),
		logger.String("reviewer", update.ReviewedBy),
		logger.Bool("trackCreated", createdTrackID != 0))

	// Decoupled from the transactional result: started, not awaited.
	if s.notifier != nil {
		s.notifier.StatusChanged(sub, cmd.Decision, cmd.AdminNotes)
	}

	return sub, nil
}

// materializeTrack copies the submission's audio into the published bucket
// and inserts the library row. On row-insert failure the copied blob is
// deleted best-effort and the insert error surfaces.
func (s *Service) materializeTrack(ctx context.Context, sub *model.Submission) (int64, string, error) {
	src, size, err := s.blobs.Download(ctx, s.submissionsBucket, sub.StoragePath)
	if err != nil {
		return 0, "", fmt.Errorf("failed to fetch submission audio %s: %w", sub.StoragePath, err)
	}
	defer src.Close()

	key := storage.ObjectKey("approved/", sub.FileName, s.now())
	if err := s.blobs.Upload(ctx, s.tracksBucket, key, src, size, ""); err != nil {
		return 0, "", fmt.Errorf("failed to copy audio to track library: %w", err)
	}

	// An approved listener submission is never automatically a jingle or a
	// bed track.
	track := &model.Track{
		StoragePath: key,
		Title:       sub.TrackTitle,
		Artist:      sub.ArtistName,
		Genre:       sub.Genre,
		BPM:         sub.BPM,
		MoodTags:    sub.MoodTags,
		IsJingle:    false,
		IsBedMusic:  false,
	}

	trackID, err := s.tracks.CreateTrack(ctx, track)
	if err != nil {
		if rmErr := s.blobs.Remove(ctx, s.tracksBucket, key); rmErr != nil {
			logger.Error("Failed to clean up published blob after track insert failure",
				logger.String("key", key),
				logger.ErrorField(rmErr))
		}
		return 0, "", fmt.Errorf("failed to create track record: %w", err)
	}

	return trackID, key, nil
}
