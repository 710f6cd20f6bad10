package models

import "time"

// Alarm is a durable fault event reported by the gateway or generated
// internally (reset audit, watchdog transitions).
type Alarm struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`     // e.g. "jam", "System Reset"
	Message      string    `json:"message"`  // human-readable
	Severity     string    `json:"severity"` // low | medium | high
	OccurredAt   time.Time `json:"timestamp"`
	Acknowledged bool      `json:"acknowledged"`
}
