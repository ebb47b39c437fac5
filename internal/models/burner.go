package models

// BurnerView is the live picture of a single burner.
type BurnerView struct {
	Active        bool         `json:"active"`
	RecipeName    string       `json:"recipe_name,omitempty"`
	CurrentTask   *CookingTask `json:"current_task,omitempty"`
	RemainingTime int          `json:"remaining_time"` // minutes
	Temperature   float64      `json:"temperature,omitempty"`
}

// DualBurnerState is a derived, never-persisted view of both burners at a
// given elapsed minute. Recomputed on every clock tick.
type DualBurnerState struct {
	Left  BurnerView `json:"left"`
	Right BurnerView `json:"right"`
}
