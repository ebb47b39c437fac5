package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartchef/internal/logger"
	"smartchef/internal/models"
	"smartchef/internal/repository"
	"smartchef/internal/scheduler"

	"github.com/google/uuid"
)

var errEmptySelection = errors.New("at least one recipe is required")

type SessionService struct {
	sessions repository.SessionRepo
	staging  repository.Staging
	log      *logger.Logger
}

func NewSessionService(sessions repository.SessionRepo, staging repository.Staging, log *logger.Logger) *SessionService {
	return &SessionService{sessions: sessions, staging: staging, log: log}
}

var _ Sessions = (*SessionService)(nil)

// Create schedules the selected recipes onto the two burners and persists
// the resulting session. The session is staged in memory first; if the
// durable write fails it stays staged so the kitchen console keeps working,
// and the failure is only logged.
func (s *SessionService) Create(ctx context.Context, userID int, recipes []models.RecipeInput) (*models.CookingSession, error) {
	if len(recipes) == 0 {
		return nil, errEmptySelection
	}

	dishes := scheduler.Schedule(recipes)
	now := time.Now().UTC()

	ids := make([]string, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}

	session := models.CookingSession{
		ID:              uuid.NewString(),
		UserID:          userID,
		Name:            fmt.Sprintf("烹饪会话 %s", now.Format("2006/1/2 15:04:05")),
		Recipes:         ids,
		ScheduledDishes: dishes,
		Status:          models.StatusPending,
		TotalDuration:   scheduler.EstimatedEndTime(dishes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	s.staging.Put(session)
	if err := s.sessions.Create(ctx, session); err != nil {
		s.log.Warnw("session_durable_create_failed", "id", session.ID, "err", err)
		return &session, nil
	}
	s.staging.Remove(session.ID)
	return &session, nil
}

// Get loads a session, falling back to the staging store when the durable
// store misses or errors. Returns (nil, nil) when the session is unknown
// everywhere, which callers surface as "session not found".
func (s *SessionService) Get(ctx context.Context, id string) (*models.CookingSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		if staged, ok := s.staging.Get(id); ok {
			s.log.Warnw("session_load_fell_back_to_staging", "id", id, "err", err)
			return staged, nil
		}
		return nil, err
	}
	if session != nil {
		return session, nil
	}
	if staged, ok := s.staging.Get(id); ok {
		return staged, nil
	}
	return nil, nil
}

// ListByUser returns the user's sessions, newest first.
func (s *SessionService) ListByUser(ctx context.Context, userID int) ([]models.CookingSession, error) {
	return s.sessions.ListByUser(ctx, userID)
}

// UpdateNotes replaces the session's free-text notes.
func (s *SessionService) UpdateNotes(ctx context.Context, id, notes string) error {
	err := s.sessions.UpdateNotes(ctx, id, notes)
	if errors.Is(err, repository.ErrSessionNotFound) {
		if staged, ok := s.staging.Get(id); ok {
			staged.Notes = notes
			staged.UpdatedAt = time.Now().UTC()
			s.staging.Put(*staged)
			return nil
		}
	}
	return err
}
