package models

import "time"

// Progress record statuses.
const (
	ProgressActive    = "active"
	ProgressCompleted = "completed"
	ProgressSkipped   = "skipped"
)

// CookingProgress is an append-only record of one task's real execution.
// Written when a step starts or completes; never mutated after completion.
// Used for history and audit, not for re-deriving the schedule.
type CookingProgress struct {
	ID              string     `json:"id"`
	SessionID       string     `json:"session_id"`
	StepIndex       int        `json:"step_index"`
	Equipment       string     `json:"equipment"` // left | right | shared
	Status          string     `json:"status"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	DurationSeconds int        `json:"duration_seconds,omitempty"` // observed, not scheduled
	Temperature     float64    `json:"temperature,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	VoicePrompts    []string   `json:"voice_prompts,omitempty"`
}
