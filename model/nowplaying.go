package model

import "time"

// PlaybackItemType distinguishes what kind of item went on air.
type PlaybackItemType string

const (
	ItemTrack   PlaybackItemType = "TRACK"
	ItemSegment PlaybackItemType = "SEGMENT"
)

// NowPlaying is one playback record. The open record (EndedAt null) is the
// item currently on air; the orchestrator closes it when it starts the next
// one.
type NowPlaying struct {
	ID                int64            `json:"id" gorm:"primaryKey"`
	StartedAt         time.Time        `json:"startedAt" gorm:"index;not null"`
	EndedAt           *time.Time       `json:"endedAt,omitempty" gorm:"index"`
	ItemType          PlaybackItemType `json:"itemType" gorm:"size:10;not null"`
	TrackID           *int64           `json:"trackId,omitempty"`
	SegmentID         *int64           `json:"segmentId,omitempty"`
	ShowID            *int64           `json:"showId,omitempty"`
	ListenersEstimate *int             `json:"listenersEstimate,omitempty"`

	Track   *Track   `json:"track,omitempty" gorm:"-"`
	Segment *Segment `json:"segment,omitempty" gorm:"-"`
	Show    *Show    `json:"show,omitempty" gorm:"foreignKey:ShowID"`
}

// TableName maps NowPlaying to its table.
func (NowPlaying) TableName() string {
	return "now_playing_history"
}
