package scheduler

import "smartchef/internal/models"

// ProjectBurners derives the dual-burner view for a given elapsed minute by
// scanning the schedule. The scheduler's non-overlap invariant guarantees at
// most one dish per burner contains the elapsed minute.
//
// The active dish's first task is surfaced as the current task for display
// and voice; tasks are not sub-scheduled within a dish's window.
func ProjectBurners(dishes []models.ScheduledDish, elapsed int) models.DualBurnerState {
	return models.DualBurnerState{
		Left:  projectBurner(dishes, models.BurnerLeft, elapsed),
		Right: projectBurner(dishes, models.BurnerRight, elapsed),
	}
}

func projectBurner(dishes []models.ScheduledDish, equipment string, elapsed int) models.BurnerView {
	for _, d := range dishes {
		if d.Equipment != equipment || !d.Occupies(elapsed) {
			continue
		}
		view := models.BurnerView{
			Active:        true,
			RecipeName:    d.RecipeName,
			RemainingTime: d.EndTime() - elapsed,
		}
		if len(d.Tasks) > 0 {
			task := d.Tasks[0]
			view.CurrentTask = &task
			view.Temperature = task.Temperature
		}
		return view
	}
	return models.BurnerView{}
}
