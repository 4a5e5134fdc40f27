package model

import "time"

// RequestStatus is the handling state of a listener request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestQueued   RequestStatus = "QUEUED"
	RequestPlayed   RequestStatus = "PLAYED"
	RequestRejected RequestStatus = "REJECTED"
)

// ValidRequestMark reports whether s is a status an admin may assign to a
// listener request.
func ValidRequestMark(s RequestStatus) bool {
	switch s {
	case RequestQueued, RequestPlayed, RequestRejected:
		return true
	}
	return false
}

// Request is a listener song request or shout-out from the public site.
type Request struct {
	ID               int64         `json:"id" gorm:"primaryKey"`
	Name             string        `json:"name,omitempty" gorm:"size:100"`
	Message          string        `json:"message" gorm:"type:text;not null"`
	RequestedTrackID *int64        `json:"requestedTrackId,omitempty" gorm:"index"`
	Status           RequestStatus `json:"status" gorm:"size:20;default:'PENDING';index"`
	HandledBy        string        `json:"handledBy,omitempty" gorm:"size:255"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// TableName maps Request to its table.
func (Request) TableName() string {
	return "requests"
}
