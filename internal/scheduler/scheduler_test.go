package scheduler

import (
	"reflect"
	"testing"

	"smartchef/internal/models"
)

func recipe(id string, cook, prep int, equipment ...string) models.RecipeInput {
	return models.RecipeInput{
		ID:          id,
		Name:        "recipe " + id,
		CookingTime: models.Minutes(cook),
		PrepTime:    models.Minutes(prep),
		Equipment:   equipment,
	}
}

func dishByID(t *testing.T, dishes []models.ScheduledDish, id string) models.ScheduledDish {
	t.Helper()
	for _, d := range dishes {
		if d.RecipeID == id {
			return d
		}
	}
	t.Fatalf("dish %q not found in schedule", id)
	return models.ScheduledDish{}
}

func TestSchedule_Empty(t *testing.T) {
	dishes := Schedule(nil)
	if len(dishes) != 0 {
		t.Fatalf("expected empty schedule, got %d dishes", len(dishes))
	}
	if end := EstimatedEndTime(dishes); end != 0 {
		t.Fatalf("expected makespan 0, got %d", end)
	}
}

func TestSchedule_SingleRecipeGoesLeft(t *testing.T) {
	dishes := Schedule([]models.RecipeInput{recipe("a", 20, 5)})
	if len(dishes) != 1 {
		t.Fatalf("expected 1 dish, got %d", len(dishes))
	}
	d := dishes[0]
	if d.Equipment != models.BurnerLeft {
		t.Fatalf("expected left burner, got %s", d.Equipment)
	}
	if d.StartTime != 0 || d.Duration != 25 {
		t.Fatalf("expected window [0,25), got start=%d duration=%d", d.StartTime, d.Duration)
	}
	if d.Status != models.DishPending {
		t.Fatalf("expected pending status, got %s", d.Status)
	}
}

func TestSchedule_LongestFirstBalancesBurners(t *testing.T) {
	// Totals: a=40, b=30, c=20. Longest-first: a->left, b->right, c->right (30<40).
	dishes := Schedule([]models.RecipeInput{
		recipe("c", 15, 5),
		recipe("a", 30, 10),
		recipe("b", 25, 5),
	})

	a := dishByID(t, dishes, "a")
	b := dishByID(t, dishes, "b")
	c := dishByID(t, dishes, "c")

	if a.Equipment != models.BurnerLeft || a.StartTime != 0 {
		t.Fatalf("a: expected left@0, got %s@%d", a.Equipment, a.StartTime)
	}
	if b.Equipment != models.BurnerRight || b.StartTime != 0 {
		t.Fatalf("b: expected right@0, got %s@%d", b.Equipment, b.StartTime)
	}
	if c.Equipment != models.BurnerRight || c.StartTime != 30 {
		t.Fatalf("c: expected right@30, got %s@%d", c.Equipment, c.StartTime)
	}
	if end := EstimatedEndTime(dishes); end != 50 {
		t.Fatalf("expected makespan 50, got %d", end)
	}
}

func TestSchedule_OrderedByDescendingTotalDuration(t *testing.T) {
	dishes := Schedule([]models.RecipeInput{
		recipe("short", 10, 5),
		recipe("long", 50, 10),
		recipe("mid", 20, 10),
	})
	want := []string{"long", "mid", "short"}
	for i, id := range want {
		if dishes[i].RecipeID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, dishes[i].RecipeID)
		}
	}
}

func TestSchedule_StableTieBreakKeepsInputOrder(t *testing.T) {
	// Equal totals: first stays first and takes the left burner.
	dishes := Schedule([]models.RecipeInput{
		recipe("first", 20, 10),
		recipe("second", 20, 10),
	})
	if dishes[0].RecipeID != "first" || dishes[0].Equipment != models.BurnerLeft {
		t.Fatalf("expected first on left, got %s on %s", dishes[0].RecipeID, dishes[0].Equipment)
	}
	if dishes[1].RecipeID != "second" || dishes[1].Equipment != models.BurnerRight {
		t.Fatalf("expected second on right, got %s on %s", dishes[1].RecipeID, dishes[1].Equipment)
	}
}

func TestSchedule_ExplicitLeftPreferenceWins(t *testing.T) {
	// Left is already loaded, but an explicit left preference still lands
	// there even though right is free.
	dishes := Schedule([]models.RecipeInput{
		recipe("big", 50, 10, "left"),
		recipe("stuck", 20, 10, "left"),
	})
	stuck := dishByID(t, dishes, "stuck")
	if stuck.Equipment != models.BurnerLeft {
		t.Fatalf("expected explicit left preference honored, got %s", stuck.Equipment)
	}
	if stuck.StartTime != 60 {
		t.Fatalf("expected queued start 60, got %d", stuck.StartTime)
	}
}

func TestSchedule_ExplicitRightPreferenceGoesRight(t *testing.T) {
	dishes := Schedule([]models.RecipeInput{recipe("r", 20, 10, "right")})
	if dishes[0].Equipment != models.BurnerRight {
		t.Fatalf("expected right burner, got %s", dishes[0].Equipment)
	}
}

func TestSchedule_UnknownEquipmentTreatedAsNoPreference(t *testing.T) {
	// "wok" is not a burner name, so placement follows load balance.
	dishes := Schedule([]models.RecipeInput{
		recipe("a", 30, 10),
		recipe("b", 20, 10, "wok"),
	})
	b := dishByID(t, dishes, "b")
	if b.Equipment != models.BurnerRight {
		t.Fatalf("expected b balanced to right, got %s", b.Equipment)
	}
}

func TestSchedule_DefaultsAppliedToMissingDurations(t *testing.T) {
	dishes := Schedule([]models.RecipeInput{{ID: "bare", Name: "bare"}})
	want := models.DefaultCookingMinutes + models.DefaultPrepMinutes
	if dishes[0].Duration != want {
		t.Fatalf("expected default duration %d, got %d", want, dishes[0].Duration)
	}
}

func TestSchedule_ExplicitZeroDurationIsKeptAsZero(t *testing.T) {
	// Zero supplied on purpose counts as zero; only a missing or negative
	// field falls back to a default.
	cases := []struct {
		name string
		in   models.RecipeInput
		want int
	}{
		{"zero prep", recipe("a", 60, 0), 60},
		{"zero cook and prep", recipe("b", 0, 0), 0},
		{"missing prep defaults", models.RecipeInput{ID: "c", CookingTime: models.Minutes(60)}, 60 + models.DefaultPrepMinutes},
		{"negative treated as missing", recipe("d", -5, -1), models.DefaultCookingMinutes + models.DefaultPrepMinutes},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.TotalDuration(); got != tc.want {
				t.Fatalf("expected total %d, got %d", tc.want, got)
			}
		})
	}
}

func TestSchedule_ThreeDishesWithZeroPrep(t *testing.T) {
	// One long dish and two short ones, all with prep explicitly zero.
	// Longest-first: r1 fills left, r2 and r3 stack on right, makespan 60.
	dishes := Schedule([]models.RecipeInput{
		recipe("r1", 60, 0),
		recipe("r2", 30, 0),
		recipe("r3", 30, 0),
	})

	want := []struct {
		id        string
		equipment string
		start     int
		duration  int
	}{
		{"r1", models.BurnerLeft, 0, 60},
		{"r2", models.BurnerRight, 0, 30},
		{"r3", models.BurnerRight, 30, 30},
	}
	for _, w := range want {
		d := dishByID(t, dishes, w.id)
		if d.Equipment != w.equipment || d.StartTime != w.start || d.Duration != w.duration {
			t.Fatalf("%s: expected %s@%d dur %d, got %s@%d dur %d",
				w.id, w.equipment, w.start, w.duration, d.Equipment, d.StartTime, d.Duration)
		}
	}
	if end := EstimatedEndTime(dishes); end != 60 {
		t.Fatalf("expected makespan 60, got %d", end)
	}
}

func TestSchedule_Deterministic(t *testing.T) {
	in := []models.RecipeInput{
		recipe("a", 30, 10),
		recipe("b", 25, 5, "left"),
		recipe("c", 25, 5),
		recipe("d", 0, 0),
	}
	first := Schedule(in)
	second := Schedule(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input produced different schedules:\n%v\n%v", first, second)
	}
}

func TestSchedule_NoOverlapPerBurner(t *testing.T) {
	dishes := Schedule([]models.RecipeInput{
		recipe("a", 30, 10),
		recipe("b", 25, 10),
		recipe("c", 20, 10),
		recipe("d", 15, 5),
		recipe("e", 10, 5),
	})
	for _, burner := range []string{models.BurnerLeft, models.BurnerRight} {
		end := 0
		for _, d := range dishes {
			if d.Equipment != burner {
				continue
			}
			if d.StartTime < end {
				t.Fatalf("%s burner: dish %s starts at %d before previous end %d", burner, d.RecipeID, d.StartTime, end)
			}
			end = d.EndTime()
		}
	}
}

func TestSchedule_DoesNotMutateInput(t *testing.T) {
	in := []models.RecipeInput{
		recipe("short", 10, 5),
		recipe("long", 50, 10),
	}
	Schedule(in)
	if in[0].ID != "short" || in[1].ID != "long" {
		t.Fatalf("input slice reordered: %s, %s", in[0].ID, in[1].ID)
	}
}
