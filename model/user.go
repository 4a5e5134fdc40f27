package model

import "time"

// User is an authenticated account. Artists get one at registration; admin
// accounts are provisioned directly.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ArtistProfile carries the public identity of a registered artist account.
type ArtistProfile struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	ArtistName   string    `json:"artistName"`
	ContactName  string    `json:"contactName"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Website      string    `json:"website,omitempty"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
