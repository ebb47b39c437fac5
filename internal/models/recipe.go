package models

// Burner assignments. "shared" is only valid as an affinity on inputs and
// tasks; the scheduler always resolves a dish to left or right.
const (
	BurnerLeft   = "left"
	BurnerRight  = "right"
	BurnerShared = "shared"
)

// Defaults applied when a recipe omits its timing fields.
const (
	DefaultCookingMinutes = 30
	DefaultPrepMinutes    = 10
)

// Minutes wraps a literal duration for the optional timing fields below.
func Minutes(n int) *int { return &n }

// RecipeInput is what the scheduler accepts. Fields besides ID and Name are
// optional. The timing fields are pointers so that an explicit 0 survives:
// only a missing or negative duration falls back to the defaults above.
type RecipeInput struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	CookingTime   *int          `json:"cooking_time,omitempty"` // minutes
	PrepTime      *int          `json:"prep_time,omitempty"`    // minutes
	Difficulty    string        `json:"difficulty,omitempty"`   // easy | medium | hard
	Calories      int           `json:"calories,omitempty"`
	Equipment     []string      `json:"equipment_needed,omitempty"` // first entry is the preferred burner
	ParallelTasks []CookingTask `json:"parallel_tasks,omitempty"`
}

// TotalDuration returns prep + cook in minutes with defaults applied to
// missing or negative fields. An explicit zero counts as zero.
func (r RecipeInput) TotalDuration() int {
	return minutesOr(r.CookingTime, DefaultCookingMinutes) +
		minutesOr(r.PrepTime, DefaultPrepMinutes)
}

func minutesOr(v *int, def int) int {
	if v == nil || *v < 0 {
		return def
	}
	return *v
}

// PreferredBurner returns the first declared equipment affinity, or
// BurnerShared when the recipe has no preference.
func (r RecipeInput) PreferredBurner() string {
	if len(r.Equipment) == 0 {
		return BurnerShared
	}
	switch r.Equipment[0] {
	case BurnerLeft, BurnerRight:
		return r.Equipment[0]
	default:
		return BurnerShared
	}
}

// CookingTask is a named sub-step of a dish. Tasks belong to exactly one
// dish and are advanced by explicit "next step" commands, not by the clock.
type CookingTask struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Duration     int      `json:"duration"`  // minutes
	Equipment    string   `json:"equipment"` // left | right | shared
	Dependencies []string `json:"dependencies,omitempty"`
	Priority     int      `json:"priority,omitempty"`
	Temperature  float64  `json:"temperature,omitempty"` // °C, 0 when undeclared
	Status       string   `json:"status,omitempty"`      // pending | active | completed
}
