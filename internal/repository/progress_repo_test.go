package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"smartchef/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newProgressMock(t *testing.T) (*ProgressSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewProgressSQLite(db), mock
}

func progressColumns() []string {
	return []string{
		"id", "session_id", "step_index", "equipment", "status", "started_at",
		"completed_at", "duration_seconds", "temperature", "notes", "voice_prompts",
	}
}

func TestProgressAppend_FillsDefaults(t *testing.T) {
	t.Parallel()
	repo, mock := newProgressMock(t)

	// ID empty -> generated, StartedAt zero -> set, equipment normalized.
	mock.ExpectExec("INSERT INTO cooking_progress").
		WithArgs(
			sqlmock.AnyArg(), "s1", 0,
			"left", models.ProgressActive,
			sqlmock.AnyArg(), nil,
			0, 200.0, "",
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.CookingProgress{
		SessionID:    "s1",
		Equipment:    "  LEFT ",
		Status:       models.ProgressActive,
		Temperature:  200,
		VoicePrompts: []string{"当前步骤：爆炒"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestProgressAppend_DBError(t *testing.T) {
	t.Parallel()
	repo, mock := newProgressMock(t)

	mock.ExpectExec("INSERT INTO cooking_progress").
		WillReturnError(errors.New("locked"))

	if err := repo.Append(ctx(t), models.CookingProgress{SessionID: "s1"}); err == nil {
		t.Fatalf("expected db error surfaced")
	}
}

func TestProgressComplete_GuardsCompletedRecords(t *testing.T) {
	t.Parallel()
	repo, mock := newProgressMock(t)

	done := time.Now().UTC()
	mock.ExpectExec("UPDATE cooking_progress SET status").
		WithArgs(models.ProgressCompleted, done, 95, "p1", models.ProgressCompleted).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Complete(ctx(t), "p1", done, 95); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestProgressList_NoFilters(t *testing.T) {
	t.Parallel()
	repo, mock := newProgressMock(t)

	started := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(progressColumns()).
		AddRow("p1", "s1", 0, "left", "completed", started, started.Add(10*time.Minute), 600, 100.0, nil, `["开始"]`).
		AddRow("p2", "s1", 1, "left", "active", started.Add(10*time.Minute), nil, nil, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM cooking_progress WHERE session_id = ?")).
		WithArgs("s1").
		WillReturnRows(rows)

	out, err := repo.List(ctx(t), "s1", time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if out[0].DurationSeconds != 600 || len(out[0].VoicePrompts) != 1 {
		t.Fatalf("unexpected first record: %+v", out[0])
	}
	if out[1].CompletedAt != nil || out[1].DurationSeconds != 0 {
		t.Fatalf("null columns not handled: %+v", out[1])
	}
}

func TestProgressList_AllFiltersAppended(t *testing.T) {
	t.Parallel()
	repo, mock := newProgressMock(t)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("session_id = ? AND started_at >= ? AND started_at <= ? AND status = ?")).
		WithArgs("s1", from, to, "completed").
		WillReturnRows(sqlmock.NewRows(progressColumns()))

	out, err := repo.List(ctx(t), "s1", from, to, " Completed ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %d", len(out))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
