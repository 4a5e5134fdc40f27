package model

import "time"

// AIHost is a synthesized radio host persona. Voice generation happens in the
// external orchestrator; this side only stores the configuration rows.
type AIHost struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"size:100;not null"`
	VoiceID       string    `json:"voiceId" gorm:"size:100;not null"`
	PersonaPrompt string    `json:"personaPrompt" gorm:"type:text;not null"`
	IsActive      bool      `json:"isActive" gorm:"default:true"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TableName maps AIHost to its table.
func (AIHost) TableName() string {
	return "ai_hosts"
}

// Show is a scheduled program slot. DaysOfWeek holds ISO weekday numbers,
// Monday=1 through Sunday=7.
type Show struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"type:text"`
	AIHostID    *int64    `json:"aiHostId" gorm:"index"`
	StartTime   string    `json:"startTime" gorm:"size:8;not null"` // HH:MM
	EndTime     string    `json:"endTime" gorm:"size:8;not null"`
	DaysOfWeek  IntList   `json:"daysOfWeek" gorm:"type:json"`
	Priority    int       `json:"priority" gorm:"default:0"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`
	CreatedAt   time.Time `json:"createdAt"`

	AIHost *AIHost `json:"aiHost,omitempty" gorm:"foreignKey:AIHostID"`
}

// TableName maps Show to its table.
func (Show) TableName() string {
	return "shows"
}
