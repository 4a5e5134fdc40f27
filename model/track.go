package model

import "time"

// Track represents a library entry eligible for on-air rotation. Jingles and
// bed music are special purpose audio flagged apart from ordinary rotation
// tracks.
type Track struct {
	ID          int64      `json:"id"`
	StoragePath string     `json:"storagePath"`
	Title       string     `json:"title"`
	Artist      string     `json:"artist"`
	Genre       string     `json:"genre"`
	BPM         *int       `json:"bpm,omitempty"`
	MoodTags    StringList `json:"moodTags,omitempty"`
	IsJingle    bool       `json:"isJingle"`
	IsBedMusic  bool       `json:"isBedMusic"`
	CreatedAt   time.Time  `json:"createdAt"`
}
