package model

import "time"

// SubmissionStatus is the review lifecycle state of an artist submission.
type SubmissionStatus string

const (
	StatusPending     SubmissionStatus = "PENDING"
	StatusUnderReview SubmissionStatus = "UNDER_REVIEW"
	StatusApproved    SubmissionStatus = "APPROVED"
	StatusRejected    SubmissionStatus = "REJECTED"
)

// ValidReviewStatus reports whether s is a status a reviewer may assign.
// PENDING is the intake state and never a review decision.
func ValidReviewStatus(s SubmissionStatus) bool {
	switch s {
	case StatusApproved, StatusRejected, StatusUnderReview:
		return true
	}
	return false
}

// Submission represents an artist-uploaded track awaiting editorial review.
// ApprovedTrackID is set exactly once, by the first successful approval, and
// is never cleared afterwards.
type Submission struct {
	ID                 int64            `json:"id"`
	ArtistProfileID    *int64           `json:"artistProfileId,omitempty"`
	ArtistName         string           `json:"artistName"`
	ContactName        string           `json:"contactName"`
	ContactEmail       string           `json:"contactEmail"`
	ContactPhone       string           `json:"contactPhone,omitempty"`
	TrackTitle         string           `json:"trackTitle"`
	Genre              string           `json:"genre,omitempty"`
	ReleaseDate        string           `json:"releaseDate"` // YYYY-MM-DD
	BPM                *int             `json:"bpm,omitempty"`
	MoodTags           StringList       `json:"moodTags,omitempty"`
	StoragePath        string           `json:"storagePath"`
	FileName           string           `json:"fileName"`
	FileSize           int64            `json:"fileSize"`
	OwnershipConfirmed bool             `json:"ownershipConfirmed"`
	PermissionGranted  bool             `json:"permissionGranted"`
	RightsHolderName   string           `json:"rightsHolderName,omitempty"`
	AdditionalInfo     string           `json:"additionalInfo,omitempty"`
	Status             SubmissionStatus `json:"status"`
	ReviewedAt         *time.Time       `json:"reviewedAt,omitempty"`
	ReviewedBy         string           `json:"reviewedBy,omitempty"`
	AdminNotes         string           `json:"adminNotes,omitempty"`
	ApprovedTrackID    *int64           `json:"approvedTrackId,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
}
