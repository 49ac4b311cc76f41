package model

import "time"

// GenerationEvent is the audit record of one generate call. It never holds
// password material.
type GenerationEvent struct {
	ID          string
	Client      string
	Length      int
	Classes     string
	Count       int
	EntropyBits float64
	Hashed      bool
	CreatedAt   time.Time
}

// Stats aggregates generation events.
type Stats struct {
	Since          *time.Time `json:"since,omitempty"`
	TotalRequests  int64      `json:"total_requests"`
	TotalPasswords int64      `json:"total_passwords"`
	AverageLength  float64    `json:"average_length"`
}
