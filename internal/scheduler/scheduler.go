// Package scheduler assigns selected recipes to the two burners and derives
// the live burner picture from a schedule plus elapsed time. Everything here
// is a pure function over its inputs; safe to call concurrently.
package scheduler

import (
	"sort"

	"smartchef/internal/models"
)

// Schedule plans the given recipes onto the left and right burners using
// greedy longest-first list scheduling: recipes are sorted by descending
// total duration (stable, so input order breaks ties), then each is placed
// on its preferred burner when it declares one, otherwise on whichever
// burner frees up first, favoring left on equal load.
//
// An empty input yields an empty schedule. Invalid durations are normalized
// by the duration model rather than rejected, so scheduling never fails.
func Schedule(recipes []models.RecipeInput) []models.ScheduledDish {
	sorted := make([]models.RecipeInput, len(recipes))
	copy(sorted, recipes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalDuration() > sorted[j].TotalDuration()
	})

	dishes := make([]models.ScheduledDish, 0, len(sorted))
	leftEnd, rightEnd := 0, 0

	for _, r := range sorted {
		duration := r.TotalDuration()
		preferred := r.PreferredBurner()

		var equipment string
		var start int
		// An explicit preference always wins, even when it unbalances the
		// load; a dish modeled as left-only genuinely needs that burner.
		switch {
		case preferred == models.BurnerLeft,
			preferred == models.BurnerShared && leftEnd <= rightEnd:
			equipment = models.BurnerLeft
			start = leftEnd
			leftEnd = start + duration
		default:
			equipment = models.BurnerRight
			start = rightEnd
			rightEnd = start + duration
		}

		dishes = append(dishes, models.ScheduledDish{
			RecipeID:   r.ID,
			RecipeName: r.Name,
			Equipment:  equipment,
			StartTime:  start,
			Duration:   duration,
			Tasks:      r.ParallelTasks,
			Status:     models.DishPending,
		})
	}

	return dishes
}

// EstimatedEndTime returns the makespan of a schedule in minutes: the
// maximum over all dishes of start + duration, 0 for an empty schedule.
func EstimatedEndTime(dishes []models.ScheduledDish) int {
	end := 0
	for _, d := range dishes {
		if d.EndTime() > end {
			end = d.EndTime()
		}
	}
	return end
}
