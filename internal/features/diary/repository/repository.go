package repository

import (
	"context"

	"calorie-tracker-bot/internal/features/diary/models"
)

// LedgerRepository persists per-user daily goals and dated meal entries.
type LedgerRepository interface {
	// GetOrInitGoal returns the user's daily calorie goal. A user seen for
	// the first time gets the default goal written before it is returned,
	// so later reads observe the same value.
	GetOrInitGoal(ctx context.Context, userID int64) (int, error)
	SetGoal(ctx context.Context, userID int64, calories int) error
	AppendMeal(ctx context.Context, userID int64, name string, calories int, date string) error
	SumCalories(ctx context.Context, userID int64, date string) (int, error)
	ListMeals(ctx context.Context, userID int64, date string) ([]models.MealEntry, error)
	DeleteMeals(ctx context.Context, userID int64, date string) error
}
