package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smartchef/internal/models"
)

type SessionSQLite struct {
	db *sql.DB
}

func NewSessionSQLite(db *sql.DB) *SessionSQLite {
	return &SessionSQLite{db: db}
}

var _ SessionRepo = (*SessionSQLite)(nil)

const (
	insertSessionSQL = `
		INSERT INTO cooking_sessions
			(id, user_id, name, recipes, scheduled_dishes, status, current_step_index,
			 started_at, estimated_end_time, actual_end_time, total_duration, notes,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectSessionSQL = `
		SELECT id, user_id, name, recipes, scheduled_dishes, status, current_step_index,
		       started_at, estimated_end_time, actual_end_time, total_duration, notes,
		       created_at, updated_at
		FROM cooking_sessions WHERE id = ?
	`

	selectSessionsByUserSQL = `
		SELECT id, user_id, name, recipes, scheduled_dishes, status, current_step_index,
		       started_at, estimated_end_time, actual_end_time, total_duration, notes,
		       created_at, updated_at
		FROM cooking_sessions WHERE user_id = ? ORDER BY created_at DESC
	`
)

// Create inserts a new session row.
func (r *SessionSQLite) Create(ctx context.Context, s models.CookingSession) error {
	recipesJSON, err := json.Marshal(s.Recipes)
	if err != nil {
		return fmt.Errorf("marshal recipes: %w", err)
	}
	dishesJSON, err := json.Marshal(s.ScheduledDishes)
	if err != nil {
		return fmt.Errorf("marshal scheduled dishes: %w", err)
	}

	now := time.Now().UTC()
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err = r.db.ExecContext(ctx, insertSessionSQL,
		s.ID,
		s.UserID,
		s.Name,
		string(recipesJSON),
		string(dishesJSON),
		s.Status,
		s.CurrentStepIndex,
		nullableTime(s.StartedAt),
		nullableTime(s.EstimatedEndTime),
		nullableTime(s.ActualEndTime),
		s.TotalDuration,
		s.Notes,
		createdAt.UTC(),
		now,
	)
	if err != nil {
		return fmt.Errorf("insert session %q: %w", s.ID, err)
	}
	return nil
}

// Get fetches a session by id. Returns (nil, nil) when absent.
func (r *SessionSQLite) Get(ctx context.Context, id string) (*models.CookingSession, error) {
	row := r.db.QueryRowContext(ctx, selectSessionSQL, id)
	s, err := scanSession(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session %q: %w", id, err)
	}
	return s, nil
}

// ListByUser returns the user's sessions, newest first.
func (r *SessionSQLite) ListByUser(ctx context.Context, userID int) ([]models.CookingSession, error) {
	rows, err := r.db.QueryContext(ctx, selectSessionsByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select sessions for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.CookingSession, 0, 16)
	for rows.Next() {
		s, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkCooking records the pending -> cooking transition.
func (r *SessionSQLite) MarkCooking(ctx context.Context, id string, startedAt, estimatedEnd time.Time) error {
	return r.update(ctx, id,
		`UPDATE cooking_sessions SET status = ?, started_at = ?, estimated_end_time = ?, updated_at = ? WHERE id = ?`,
		models.StatusCooking, startedAt.UTC(), estimatedEnd.UTC(), time.Now().UTC(), id)
}

// MarkCompleted records the cooking -> completed transition.
func (r *SessionSQLite) MarkCompleted(ctx context.Context, id string, endedAt time.Time) error {
	return r.update(ctx, id,
		`UPDATE cooking_sessions SET status = ?, actual_end_time = ?, updated_at = ? WHERE id = ?`,
		models.StatusCompleted, endedAt.UTC(), time.Now().UTC(), id)
}

// SaveCursor persists the voice-navigation progress cursor.
func (r *SessionSQLite) SaveCursor(ctx context.Context, id string, stepIndex int) error {
	return r.update(ctx, id,
		`UPDATE cooking_sessions SET current_step_index = ?, updated_at = ? WHERE id = ?`,
		stepIndex, time.Now().UTC(), id)
}

// SaveDishes rewrites the dish list; used when dish statuses change.
func (r *SessionSQLite) SaveDishes(ctx context.Context, id string, dishes []models.ScheduledDish) error {
	dishesJSON, err := json.Marshal(dishes)
	if err != nil {
		return fmt.Errorf("marshal scheduled dishes: %w", err)
	}
	return r.update(ctx, id,
		`UPDATE cooking_sessions SET scheduled_dishes = ?, updated_at = ? WHERE id = ?`,
		string(dishesJSON), time.Now().UTC(), id)
}

// UpdateNotes replaces the session's free-text notes.
func (r *SessionSQLite) UpdateNotes(ctx context.Context, id string, notes string) error {
	return r.update(ctx, id,
		`UPDATE cooking_sessions SET notes = ?, updated_at = ? WHERE id = ?`,
		notes, time.Now().UTC(), id)
}

// ErrSessionNotFound reports a lifecycle write against an id the durable
// store has never seen (e.g. a session still held only in staging).
var ErrSessionNotFound = errors.New("session not found")

func (r *SessionSQLite) update(ctx context.Context, id, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update session %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update session %q: %w", id, ErrSessionNotFound)
	}
	return nil
}

// scanSession reads one session row via the given Scan function, decoding
// the JSON document columns.
func scanSession(scan func(...any) error) (*models.CookingSession, error) {
	var (
		s            models.CookingSession
		name         sql.NullString
		notes        sql.NullString
		recipesJSON  string
		dishesJSON   string
		startedAt    sql.NullTime
		estimatedEnd sql.NullTime
		actualEnd    sql.NullTime
	)
	if err := scan(
		&s.ID,
		&s.UserID,
		&name,
		&recipesJSON,
		&dishesJSON,
		&s.Status,
		&s.CurrentStepIndex,
		&startedAt,
		&estimatedEnd,
		&actualEnd,
		&s.TotalDuration,
		&notes,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	s.Name = name.String
	s.Notes = notes.String
	s.StartedAt = timePtr(startedAt)
	s.EstimatedEndTime = timePtr(estimatedEnd)
	s.ActualEndTime = timePtr(actualEnd)
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()

	if err := json.Unmarshal([]byte(recipesJSON), &s.Recipes); err != nil {
		return nil, fmt.Errorf("decode recipes for session %q: %w", s.ID, err)
	}
	if err := json.Unmarshal([]byte(dishesJSON), &s.ScheduledDishes); err != nil {
		return nil, fmt.Errorf("decode scheduled dishes for session %q: %w", s.ID, err)
	}
	return &s, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	utc := t.Time.UTC()
	return &utc
}
