package models

import "time"

// PendingReset is the single-slot reset command awaiting gateway action.
// A new user request overwrites any unconsumed prior one.
type PendingReset struct {
	Active    bool       `json:"active"`
	Timestamp *time.Time `json:"timestamp"`
}
