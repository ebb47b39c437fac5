package models

import "time"

// Session lifecycle statuses. StatusPaused exists for API symmetry but is
// never written durably: pausing only stops the client clock, so a session
// reloaded after a pause resumes as if it had never paused. Known gap,
// preserved from the original behavior.
const (
	StatusPending   = "pending"
	StatusCooking   = "cooking"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

// Dish statuses.
const (
	DishPending   = "pending"
	DishCooking   = "cooking"
	DishCompleted = "completed"
)

// ScheduledDish is one recipe's occupancy of one burner for a contiguous
// window. Produced once by the scheduler; only Status mutates afterwards.
type ScheduledDish struct {
	RecipeID   string        `json:"recipe_id"`
	RecipeName string        `json:"recipe_name"`
	Equipment  string        `json:"equipment"`  // left | right, never shared
	StartTime  int           `json:"start_time"` // minutes from session start
	Duration   int           `json:"duration"`   // minutes
	Tasks      []CookingTask `json:"tasks,omitempty"`
	Status     string        `json:"status"` // pending | cooking | completed
}

// EndTime returns the first minute after the dish's window.
func (d ScheduledDish) EndTime() int {
	return d.StartTime + d.Duration
}

// Occupies reports whether the dish's window contains the given elapsed
// minute, i.e. elapsed is in [start, start+duration).
func (d ScheduledDish) Occupies(elapsed int) bool {
	return d.StartTime <= elapsed && elapsed < d.EndTime()
}

// CookingSession is the aggregate root for one end-to-end cooking run.
type CookingSession struct {
	ID               string          `json:"id"`
	UserID           int             `json:"user_id"`
	Name             string          `json:"name,omitempty"`
	Recipes          []string        `json:"recipes"` // recipe IDs
	ScheduledDishes  []ScheduledDish `json:"scheduled_dishes"`
	Status           string          `json:"status"`
	CurrentStepIndex int             `json:"current_step_index"`
	StartedAt        *time.Time      `json:"started_at,omitempty"`
	EstimatedEndTime *time.Time      `json:"estimated_end_time,omitempty"`
	ActualEndTime    *time.Time      `json:"actual_end_time,omitempty"`
	TotalDuration    int             `json:"total_duration"` // minutes, max over dishes of start+duration
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
