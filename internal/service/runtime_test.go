package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartchef/internal/logger"
	"smartchef/internal/models"
	"smartchef/internal/repository"
	"smartchef/internal/voice"
)

type fakeSessionLoader struct {
	sessions map[string]*models.CookingSession
	err      error
	loads    int
}

func (f *fakeSessionLoader) Create(ctx context.Context, userID int, recipes []models.RecipeInput) (*models.CookingSession, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeSessionLoader) Get(ctx context.Context, id string) (*models.CookingSession, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[id], nil
}
func (f *fakeSessionLoader) ListByUser(ctx context.Context, userID int) ([]models.CookingSession, error) {
	return nil, nil
}
func (f *fakeSessionLoader) UpdateNotes(ctx context.Context, id, notes string) error {
	return nil
}

func newRuntimeFixture(loader *fakeSessionLoader) *SessionRuntime {
	repos := &repository.Repository{
		Sessions: &fakeSessionStore{},
		Progress: &fakeProgressStore{},
		Staging:  repository.NewMemoryStaging(),
	}
	return NewSessionRuntime(loader, repos, voice.NewNoopSpeaker(), logger.Get(logger.ErrorLevel), time.Hour)
}

func TestRuntime_AttachReturnsSameController(t *testing.T) {
	loader := &fakeSessionLoader{sessions: map[string]*models.CookingSession{
		"s1": testSession(),
	}}
	rt := newRuntimeFixture(loader)
	defer rt.Close()

	first, err := rt.Attach(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := rt.Attach(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same controller instance")
	}
	if loader.loads != 1 {
		t.Fatalf("expected a single session load, got %d", loader.loads)
	}
}

func TestRuntime_AttachUnknownSession(t *testing.T) {
	rt := newRuntimeFixture(&fakeSessionLoader{sessions: map[string]*models.CookingSession{}})
	defer rt.Close()

	if _, err := rt.Attach(context.Background(), "nope"); !errors.Is(err, ErrSessionUnavailable) {
		t.Fatalf("expected ErrSessionUnavailable, got %v", err)
	}
}

func TestRuntime_AttachPropagatesLoadError(t *testing.T) {
	rt := newRuntimeFixture(&fakeSessionLoader{err: errors.New("db down")})
	defer rt.Close()

	if _, err := rt.Attach(context.Background(), "s1"); err == nil {
		t.Fatalf("expected load error surfaced")
	}
}

func TestRuntime_DetachDropsController(t *testing.T) {
	loader := &fakeSessionLoader{sessions: map[string]*models.CookingSession{
		"s1": testSession(),
	}}
	rt := newRuntimeFixture(loader)
	defer rt.Close()

	first, _ := rt.Attach(context.Background(), "s1")
	rt.Detach("s1")
	rt.Detach("s1") // unknown id is fine

	loader.sessions["s1"] = testSession()
	second, _ := rt.Attach(context.Background(), "s1")
	if first == second {
		t.Fatalf("expected a fresh controller after detach")
	}
}
