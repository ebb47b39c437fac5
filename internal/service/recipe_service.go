package service

import (
	"context"
	"time"

	"smartchef/internal/logger"
	"smartchef/internal/models"
	"smartchef/internal/repository"
)

// fallbackRecipes keeps the selection step usable when the recipe store is
// empty, slow, or down.
var fallbackRecipes = []models.RecipeInput{
	{ID: "fb1", Name: "番茄炒蛋", Description: "经典家常菜", CookingTime: models.Minutes(15), Difficulty: "easy", Calories: 180},
	{ID: "fb2", Name: "宫保鸡丁", Description: "四川名菜，鸡肉嫩滑", CookingTime: models.Minutes(25), Difficulty: "medium", Calories: 320},
	{ID: "fb3", Name: "清蒸鲈鱼", Description: "高蛋白低脂肪", CookingTime: models.Minutes(20), Difficulty: "medium", Calories: 150},
	{ID: "fb4", Name: "西兰花炒虾仁", Description: "减脂餐经典搭配", CookingTime: models.Minutes(15), Difficulty: "easy", Calories: 150},
	{ID: "fb5", Name: "红烧肉", Description: "经典家常菜，肥而不腻", CookingTime: models.Minutes(60), Difficulty: "medium", Calories: 680},
}

type RecipeService struct {
	recipes repository.RecipeRepo
	log     *logger.Logger
	wait    time.Duration
}

func NewRecipeService(recipes repository.RecipeRepo, log *logger.Logger, wait time.Duration) *RecipeService {
	return &RecipeService{recipes: recipes, log: log, wait: wait}
}

var _ Recipes = (*RecipeService)(nil)

// ListCookable returns recipes for the selection step. The store lookup is
// bounded by the configured wait; on timeout, error, or an empty result the
// fallback list is returned so selection never blocks on a slow store.
func (s *RecipeService) ListCookable(ctx context.Context) ([]models.RecipeInput, error) {
	ctx, cancel := context.WithTimeout(ctx, s.wait)
	defer cancel()

	recipes, err := s.recipes.ListCookable(ctx)
	if err != nil {
		s.log.Warnw("recipe_store_unavailable_using_fallback", "err", err)
		return fallbackList(), nil
	}
	if len(recipes) == 0 {
		return fallbackList(), nil
	}
	return recipes, nil
}

// Resolve maps selected recipe ids to inputs, preserving the listing order.
// Unknown ids are skipped, mirroring a selection made against a stale list.
func (s *RecipeService) Resolve(ctx context.Context, ids []string) ([]models.RecipeInput, error) {
	all, err := s.ListCookable(ctx)
	if err != nil {
		return nil, err
	}
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	out := make([]models.RecipeInput, 0, len(ids))
	for _, r := range all {
		if selected[r.ID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func fallbackList() []models.RecipeInput {
	out := make([]models.RecipeInput, len(fallbackRecipes))
	copy(out, fallbackRecipes)
	return out
}
