package models

import "time"

// User is an account. Devices authenticate as a user; collaboration
// sessions show its Name to other participants.
type User struct {
	UserID int64  `json:"-"`
	Login  string `json:"login"`
	Name   string `json:"name"`

	// Password arrives on register and login only and is never stored.
	Password     string `json:"password,omitempty"`
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
