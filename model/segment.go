package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// SegmentType classifies a pre-produced voice segment.
type SegmentType string

const (
	SegmentAITalk  SegmentType = "AI_TALK"
	SegmentNews    SegmentType = "NEWS"
	SegmentWeather SegmentType = "WEATHER"
	SegmentAd      SegmentType = "AD"
)

// ValidSegmentType reports whether t is a known segment classification.
func ValidSegmentType(t SegmentType) bool {
	switch t {
	case SegmentAITalk, SegmentNews, SegmentWeather, SegmentAd:
		return true
	}
	return false
}

// JSONMap is a map stored as a JSON column. Used for free-form segment
// metadata written by the orchestrator.
type JSONMap map[string]interface{}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*m = nil
		return nil
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		*m = nil
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(map[string]interface{}(m))
}

// Segment is a generated spoken-word clip (host talk, news, weather, ad)
// produced by the orchestrator and played between tracks. The backend only
// stores and lists them; generation happens elsewhere.
type Segment struct {
	ID          int64       `json:"id" gorm:"primaryKey"`
	Type        SegmentType `json:"type" gorm:"size:20;not null"`
	ShowID      *int64      `json:"showId,omitempty" gorm:"index"`
	AIHostID    *int64      `json:"aiHostId,omitempty" gorm:"index"`
	StoragePath string      `json:"storagePath" gorm:"size:767;not null"`
	TextScript  string      `json:"textScript" gorm:"type:text"`
	Meta        JSONMap     `json:"meta,omitempty" gorm:"type:json"`
	CreatedAt   time.Time   `json:"createdAt"`

	AIHost *AIHost `json:"aiHost,omitempty" gorm:"foreignKey:AIHostID"`
}

// TableName maps Segment to its table.
func (Segment) TableName() string {
	return "segments"
}
