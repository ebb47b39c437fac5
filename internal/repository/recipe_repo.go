package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"smartchef/internal/models"
)

type RecipeSQLite struct {
	db *sql.DB
}

func NewRecipeSQLite(db *sql.DB) *RecipeSQLite { return &RecipeSQLite{db: db} }

var _ RecipeRepo = (*RecipeSQLite)(nil)

const selectCookableSQL = `
	SELECT id, name, description, cooking_time, prep_time, difficulty, calories,
	       equipment_needed, parallel_tasks
	FROM recipes ORDER BY name LIMIT 20
`

// ListCookable returns up to 20 recipes for the selection step. An empty
// table yields an empty slice, not an error; the service layer decides
// whether to fall back.
func (r *RecipeSQLite) ListCookable(ctx context.Context) ([]models.RecipeInput, error) {
	rows, err := r.db.QueryContext(ctx, selectCookableSQL)
	if err != nil {
		return nil, fmt.Errorf("select cookable recipes: %w", err)
	}
	defer rows.Close()

	out := make([]models.RecipeInput, 0, 20)
	for rows.Next() {
		var (
			rec           models.RecipeInput
			description   sql.NullString
			cookingTime   sql.NullInt64
			prepTime      sql.NullInt64
			difficulty    sql.NullString
			calories      sql.NullInt64
			equipmentJSON sql.NullString
			tasksJSON     sql.NullString
		)
		if err := rows.Scan(
			&rec.ID, &rec.Name, &description, &cookingTime, &prepTime,
			&difficulty, &calories, &equipmentJSON, &tasksJSON,
		); err != nil {
			return nil, err
		}
		rec.Description = description.String
		if cookingTime.Valid {
			rec.CookingTime = models.Minutes(int(cookingTime.Int64))
		}
		if prepTime.Valid {
			rec.PrepTime = models.Minutes(int(prepTime.Int64))
		}
		rec.Difficulty = difficulty.String
		rec.Calories = int(calories.Int64)
		if equipmentJSON.Valid && equipmentJSON.String != "" {
			if err := json.Unmarshal([]byte(equipmentJSON.String), &rec.Equipment); err != nil {
				return nil, fmt.Errorf("decode equipment for recipe %q: %w", rec.ID, err)
			}
		}
		if tasksJSON.Valid && tasksJSON.String != "" {
			if err := json.Unmarshal([]byte(tasksJSON.String), &rec.ParallelTasks); err != nil {
				return nil, fmt.Errorf("decode tasks for recipe %q: %w", rec.ID, err)
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
