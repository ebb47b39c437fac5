package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"smartchef/internal/models"

	"github.com/google/uuid"
)

type ProgressSQLite struct {
	db *sql.DB
}

func NewProgressSQLite(db *sql.DB) *ProgressSQLite { return &ProgressSQLite{db: db} }

var _ ProgressRepo = (*ProgressSQLite)(nil)

// Append inserts a new progress record. If ID or StartedAt are empty,
// they're set.
func (r *ProgressSQLite) Append(ctx context.Context, p models.CookingProgress) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.StartedAt.IsZero() {
		p.StartedAt = time.Now().UTC()
	} else {
		p.StartedAt = p.StartedAt.UTC()
	}

	var promptsPtr *string
	if len(p.VoicePrompts) > 0 {
		if b, err := json.Marshal(p.VoicePrompts); err == nil {
			s := string(b)
			promptsPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cooking_progress
			(id, session_id, step_index, equipment, status, started_at, completed_at,
			 duration_seconds, temperature, notes, voice_prompts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.SessionID,
		p.StepIndex,
		strings.ToLower(strings.TrimSpace(p.Equipment)),
		p.Status,
		p.StartedAt,
		nullableTime(p.CompletedAt),
		p.DurationSeconds,
		p.Temperature,
		p.Notes,
		promptsPtr,
	)
	if err != nil {
		return fmt.Errorf("insert progress for session %q: %w", p.SessionID, err)
	}
	return nil
}

// Complete closes an active record with its observed duration. Completed
// records are never touched again.
func (r *ProgressSQLite) Complete(ctx context.Context, id string, completedAt time.Time, durationSeconds int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE cooking_progress SET status = ?, completed_at = ?, duration_seconds = ?
		WHERE id = ? AND status != ?
	`, models.ProgressCompleted, completedAt.UTC(), durationSeconds, id, models.ProgressCompleted)
	if err != nil {
		return fmt.Errorf("complete progress %q: %w", id, err)
	}
	return nil
}

// List returns a session's records filtered by [from, to] (inclusive)
// and/or status, ordered ASC by start time.
func (r *ProgressSQLite) List(ctx context.Context, sessionID string, from, to time.Time, status string) ([]models.CookingProgress, error) {
	conds := []string{"session_id = ?"}
	args := []any{sessionID}

	if !from.IsZero() {
		conds = append(conds, "started_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "started_at <= ?")
		args = append(args, to.UTC())
	}
	if status = strings.ToLower(strings.TrimSpace(status)); status != "" {
		conds = append(conds, "status = ?")
		args = append(args, status)
	}

	q := `SELECT id, session_id, step_index, equipment, status, started_at, completed_at,
	             duration_seconds, temperature, notes, voice_prompts
	      FROM cooking_progress WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY started_at ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select progress for session %q: %w", sessionID, err)
	}
	defer rows.Close()

	out := make([]models.CookingProgress, 0, 32)
	for rows.Next() {
		var (
			p           models.CookingProgress
			completedAt sql.NullTime
			duration    sql.NullInt64
			temperature sql.NullFloat64
			notes       sql.NullString
			promptsStr  sql.NullString
		)
		if err := rows.Scan(
			&p.ID, &p.SessionID, &p.StepIndex, &p.Equipment, &p.Status,
			&p.StartedAt, &completedAt, &duration, &temperature, &notes, &promptsStr,
		); err != nil {
			return nil, err
		}
		p.StartedAt = p.StartedAt.UTC()
		p.CompletedAt = timePtr(completedAt)
		p.DurationSeconds = int(duration.Int64)
		p.Temperature = temperature.Float64
		p.Notes = notes.String
		if promptsStr.Valid && promptsStr.String != "" {
			// keep going on malformed prompt lists; they are advisory only
			_ = json.Unmarshal([]byte(promptsStr.String), &p.VoicePrompts)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
