// Package model defines domain entities for the application.
package model

import "time"

// TimeLayout is the format for persisted timestamps.
// Timestamps are stored as strings so the data file stays human-readable.
const TimeLayout = "2006-01-02 15:04:05.000000"

// User represents a single user record.
type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	// UpdatedAt is empty until the record has been updated at least once.
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Now returns the current UTC time formatted with TimeLayout.
func Now() string {
	return time.Now().UTC().Format(TimeLayout)
}
