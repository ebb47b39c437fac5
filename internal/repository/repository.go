package repository

import (
	"context"
	"database/sql"
	"time"

	"smartchef/internal/models"
	"smartchef/internal/repository/db"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// SessionRepo persists cooking sessions. Get returns (nil, nil) when the
// session does not exist; lifecycle writes are partial updates so a failed
// write never tears the stored aggregate.
type SessionRepo interface {
	Create(ctx context.Context, s models.CookingSession) error
	Get(ctx context.Context, id string) (*models.CookingSession, error)
	ListByUser(ctx context.Context, userID int) ([]models.CookingSession, error)
	MarkCooking(ctx context.Context, id string, startedAt, estimatedEnd time.Time) error
	MarkCompleted(ctx context.Context, id string, endedAt time.Time) error
	SaveCursor(ctx context.Context, id string, stepIndex int) error
	SaveDishes(ctx context.Context, id string, dishes []models.ScheduledDish) error
	UpdateNotes(ctx context.Context, id string, notes string) error
}

// ProgressRepo is the append-only execution log.
type ProgressRepo interface {
	Append(ctx context.Context, p models.CookingProgress) error
	Complete(ctx context.Context, id string, completedAt time.Time, durationSeconds int) error
	List(ctx context.Context, sessionID string, from, to time.Time, status string) ([]models.CookingProgress, error)
}

// RecipeRepo serves the selection step.
type RecipeRepo interface {
	ListCookable(ctx context.Context) ([]models.RecipeInput, error)
}

// Staging holds sessions that are not yet durably persisted, keyed by
// session id. Reads fall back here when the durable store misses.
type Staging interface {
	Put(session models.CookingSession)
	Get(id string) (*models.CookingSession, bool)
	Remove(id string)
}

type Repository struct {
	Sessions SessionRepo
	Progress ProgressRepo
	Recipes  RecipeRepo
	Auth     Authorization
	Staging  Staging
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Sessions: NewSessionSQLite(sqlDB),
		Progress: NewProgressSQLite(sqlDB),
		Recipes:  NewRecipeSQLite(sqlDB),
		Auth:     NewUserRepository(sqlDB),
		Staging:  NewMemoryStaging(),
	}
}

// InitDB opens the SQLite database and applies the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
