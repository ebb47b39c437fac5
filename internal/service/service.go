package service

import (
	"context"
	"time"

	"smartchef/internal/logger"
	"smartchef/internal/models"
	"smartchef/internal/repository"
	"smartchef/internal/voice"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Sessions owns the cooking-session aggregate: creation (which runs the
// scheduler), reads with staging fallback, and notes.
type Sessions interface {
	Create(ctx context.Context, userID int, recipes []models.RecipeInput) (*models.CookingSession, error)
	Get(ctx context.Context, id string) (*models.CookingSession, error)
	ListByUser(ctx context.Context, userID int) ([]models.CookingSession, error)
	UpdateNotes(ctx context.Context, id, notes string) error
}

// Recipes populates the selection step. Lookups are bounded by a caller-side
// timeout and degrade to a built-in fallback list, so selection never hangs
// on a slow store.
type Recipes interface {
	ListCookable(ctx context.Context) ([]models.RecipeInput, error)
	Resolve(ctx context.Context, ids []string) ([]models.RecipeInput, error)
}

// Progress exposes the append-only execution log with filtering access.
type Progress interface {
	List(ctx context.Context, sessionID string, f ProgressFilter) ([]models.CookingProgress, error)
}

// Runtime manages live session controllers: one controller per session,
// created on first attach, torn down on detach or shutdown.
type Runtime interface {
	Attach(ctx context.Context, sessionID string) (*Controller, error)
	Detach(sessionID string)
	Close()
}

// ProgressFilter supports history filtering by time range and status.
type ProgressFilter struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Status string    // "", "active", "completed", "skipped"
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Sessions
	Recipes
	Progress
	Authorization
	Runtime
}

// Config carries the service-level knobs main reads from viper.
type Config struct {
	SigningKey   string
	ClockTick    time.Duration // wall time per simulated minute
	RecipeWait   time.Duration // budget for recipe-source lookups
	VoiceEnabled bool
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, speaker voice.Speaker, log *logger.Logger, cfg Config) *Service {
	if cfg.ClockTick <= 0 {
		cfg.ClockTick = time.Minute
	}
	if cfg.RecipeWait <= 0 {
		cfg.RecipeWait = 3 * time.Second
	}
	if !cfg.VoiceEnabled {
		speaker = voice.NewNoopSpeaker()
	}

	sessions := NewSessionService(repos.Sessions, repos.Staging, log)
	return &Service{
		Sessions:      sessions,
		Recipes:       NewRecipeService(repos.Recipes, log, cfg.RecipeWait),
		Progress:      NewProgressService(repos.Progress),
		Authorization: NewAuthService(repos.Auth, cfg.SigningKey),
		Runtime:       NewSessionRuntime(sessions, repos, speaker, log, cfg.ClockTick),
	}
}
