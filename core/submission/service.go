package submission

import (
	"time"

	"flamtunes/model"
	"flamtunes/repository"
	"flamtunes/storage"
)

// MaxSubmissionSize is the upload cap for listener submissions.
const MaxSubmissionSize = 50 << 20 // 50 MiB

// Notifier delivers a best-effort status notification to the submitter. The
// call must not block; its outcome never affects the review result.
type Notifier interface {
	StatusChanged(sub *model.Submission, status model.SubmissionStatus, adminNotes string)
}

// Service owns the submission intake and review workflows.
type Service struct {
	subs   repository.SubmissionRepository
	tracks repository.TrackRepository
	blobs  storage.Store

	submissionsBucket string
	tracksBucket      string

	notifier Notifier
	now      func() time.Time
}

// NewService wires the submission workflows. notifier may be nil.
func NewService(
	subs repository.SubmissionRepository,
	tracks repository.TrackRepository,
	blobs storage.Store,
	submissionsBucket, tracksBucket string,
	notifier Notifier,
) *Service {
	return &Service{
		subs:              subs,
		tracks:            tracks,
		blobs:             blobs,
		submissionsBucket: submissionsBucket,
		tracksBucket:      tracksBucket,
		notifier:          notifier,
		now:               time.Now,
	}
}
