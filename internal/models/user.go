package models

import "time"

// User is a dashboard account allowed to change settings when auth is enabled.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // don’t expose hash
	CreatedAt    time.Time `json:"created_at,omitempty"`
}
