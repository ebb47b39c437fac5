package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartchef/internal/logger"
	"smartchef/internal/models"
)

type fakeRecipeStore struct {
	resp  []models.RecipeInput
	err   error
	delay time.Duration
}

func (f *fakeRecipeStore) ListCookable(ctx context.Context) ([]models.RecipeInput, error) {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.resp, f.err
}

func newRecipeService(store *fakeRecipeStore, wait time.Duration) *RecipeService {
	return NewRecipeService(store, logger.Get(logger.ErrorLevel), wait)
}

func TestRecipeService_ListCookable_FromStore(t *testing.T) {
	store := &fakeRecipeStore{resp: []models.RecipeInput{{ID: "r1", Name: "麻婆豆腐"}}}
	svc := newRecipeService(store, time.Second)

	got, err := svc.ListCookable(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("expected store recipes, got %+v", got)
	}
}

func TestRecipeService_ListCookable_FallbackOnError(t *testing.T) {
	store := &fakeRecipeStore{err: errors.New("db down")}
	svc := newRecipeService(store, time.Second)

	got, err := svc.ListCookable(context.Background())
	if err != nil {
		t.Fatalf("fallback should swallow the store error: %v", err)
	}
	if len(got) != 5 || got[0].Name != "番茄炒蛋" {
		t.Fatalf("expected fallback list, got %+v", got)
	}
}

func TestRecipeService_ListCookable_FallbackOnEmpty(t *testing.T) {
	svc := newRecipeService(&fakeRecipeStore{}, time.Second)
	got, _ := svc.ListCookable(context.Background())
	if len(got) != 5 {
		t.Fatalf("expected fallback for empty store, got %d recipes", len(got))
	}
}

func TestRecipeService_ListCookable_FallbackOnSlowStore(t *testing.T) {
	store := &fakeRecipeStore{
		resp:  []models.RecipeInput{{ID: "slow"}},
		delay: 200 * time.Millisecond,
	}
	svc := newRecipeService(store, 20*time.Millisecond)

	got, err := svc.ListCookable(context.Background())
	if err != nil {
		t.Fatalf("timeout should fall back, not fail: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected fallback on timeout, got %+v", got)
	}
}

func TestRecipeService_ListCookable_FallbackIsACopy(t *testing.T) {
	svc := newRecipeService(&fakeRecipeStore{}, time.Second)
	first, _ := svc.ListCookable(context.Background())
	first[0].Name = "mutated"
	second, _ := svc.ListCookable(context.Background())
	if second[0].Name != "番茄炒蛋" {
		t.Fatalf("fallback list mutated through a returned slice")
	}
}

func TestRecipeService_Resolve(t *testing.T) {
	store := &fakeRecipeStore{resp: []models.RecipeInput{
		{ID: "r1", Name: "一"},
		{ID: "r2", Name: "二"},
		{ID: "r3", Name: "三"},
	}}
	svc := newRecipeService(store, time.Second)

	got, err := svc.Resolve(context.Background(), []string{"r3", "r1", "missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// listing order, unknown ids skipped
	if len(got) != 2 || got[0].ID != "r1" || got[1].ID != "r3" {
		t.Fatalf("unexpected resolution: %+v", got)
	}
}
