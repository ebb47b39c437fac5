package repository

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRecipeMock(t *testing.T) (*RecipeSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewRecipeSQLite(db), mock
}

func recipeColumns() []string {
	return []string{
		"id", "name", "description", "cooking_time", "prep_time",
		"difficulty", "calories", "equipment_needed", "parallel_tasks",
	}
}

func TestListCookable_DecodesRows(t *testing.T) {
	t.Parallel()
	repo, mock := newRecipeMock(t)

	rows := sqlmock.NewRows(recipeColumns()).
		AddRow("r1", "宫保鸡丁", "四川名菜", 25, 10, "medium", 320, `["left"]`,
			`[{"id":"t1","name":"切丁","duration":10}]`).
		AddRow("r2", "白粥", nil, nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(selectCookableSQL)).WillReturnRows(rows)

	out, err := repo.ListCookable(ctx(t))
	if err != nil {
		t.Fatalf("ListCookable: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(out))
	}
	first := out[0]
	if first.CookingTime == nil || *first.CookingTime != 25 || len(first.Equipment) != 1 || first.Equipment[0] != "left" {
		t.Fatalf("first recipe not decoded: %+v", first)
	}
	if len(first.ParallelTasks) != 1 || first.ParallelTasks[0].Name != "切丁" {
		t.Fatalf("tasks not decoded: %+v", first.ParallelTasks)
	}
	second := out[1]
	if second.CookingTime != nil || second.PrepTime != nil || second.Equipment != nil || second.ParallelTasks != nil {
		t.Fatalf("null columns not handled: %+v", second)
	}
}

func TestListCookable_EmptyTable(t *testing.T) {
	t.Parallel()
	repo, mock := newRecipeMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectCookableSQL)).
		WillReturnRows(sqlmock.NewRows(recipeColumns()))

	out, err := repo.ListCookable(ctx(t))
	if err != nil {
		t.Fatalf("empty table should not error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty slice, got %+v", out)
	}
}

func TestListCookable_QueryError(t *testing.T) {
	t.Parallel()
	repo, mock := newRecipeMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectCookableSQL)).
		WillReturnError(errors.New("no such table"))

	if _, err := repo.ListCookable(ctx(t)); err == nil {
		t.Fatalf("expected query error surfaced")
	}
}

func TestListCookable_MalformedEquipmentJSON(t *testing.T) {
	t.Parallel()
	repo, mock := newRecipeMock(t)

	rows := sqlmock.NewRows(recipeColumns()).
		AddRow("r1", "bad", nil, 10, 5, nil, nil, `not-json`, nil)
	mock.ExpectQuery(regexp.QuoteMeta(selectCookableSQL)).WillReturnRows(rows)

	if _, err := repo.ListCookable(ctx(t)); err == nil {
		t.Fatalf("expected decode error surfaced")
	}
}
