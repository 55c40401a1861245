package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"calorie-tracker-bot/internal/features/diary/models"
	"calorie-tracker-bot/internal/features/diary/repository"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) repository.LedgerRepository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetOrInitGoal(ctx context.Context, userID int64) (int, error) {
	var goal int
	err := r.db.QueryRowContext(ctx,
		`SELECT daily_calories FROM users WHERE user_id = ?`, userID).Scan(&goal)
	if err == nil {
		return goal, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to get goal: %w", err)
	}

	// First contact: persist the default so later reads agree.
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (user_id, daily_calories) VALUES (?, ?)
		 ON CONFLICT(user_id) DO NOTHING`, userID, models.DefaultDailyGoal)
	if err != nil {
		return 0, fmt.Errorf("failed to init goal: %w", err)
	}
	return models.DefaultDailyGoal, nil
}

func (r *sqliteRepository) SetGoal(ctx context.Context, userID int64, calories int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, daily_calories)
		VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET daily_calories = excluded.daily_calories
	`, userID, calories)
	if err != nil {
		return fmt.Errorf("failed to set goal: %w", err)
	}
	return nil
}

func (r *sqliteRepository) AppendMeal(ctx context.Context, userID int64, name string, calories int, date string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO meals (user_id, name, calories, date)
		VALUES (?, ?, ?, ?)
	`, userID, name, calories, date)
	if err != nil {
		return fmt.Errorf("failed to append meal: %w", err)
	}
	return nil
}

func (r *sqliteRepository) SumCalories(ctx context.Context, userID int64, date string) (int, error) {
	var sum sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT SUM(calories) FROM meals WHERE user_id = ? AND date = ?
	`, userID, date).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum calories: %w", err)
	}
	if !sum.Valid {
		return 0, nil
	}
	return int(sum.Int64), nil
}

func (r *sqliteRepository) ListMeals(ctx context.Context, userID int64, date string) ([]models.MealEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, calories FROM meals
		WHERE user_id = ? AND date = ?
		ORDER BY id
	`, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer rows.Close()

	var meals []models.MealEntry
	for rows.Next() {
		entry := models.MealEntry{UserID: userID, Date: date}
		if err := rows.Scan(&entry.Name, &entry.Calories); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meals: %w", err)
	}
	return meals, nil
}

func (r *sqliteRepository) DeleteMeals(ctx context.Context, userID int64, date string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM meals WHERE user_id = ? AND date = ?
	`, userID, date)
	if err != nil {
		return fmt.Errorf("failed to delete meals: %w", err)
	}
	return nil
}
