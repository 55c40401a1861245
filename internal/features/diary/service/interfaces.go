package service

import (
	"context"

	"calorie-tracker-bot/internal/features/diary/models"
)

// NutritionOracle turns a food photo plus a free-text hint into a nutrition
// estimate. Implementations report "no dish" and "unusable answer" as
// distinct errors (oracle.ErrDishNotFound, oracle.ErrMalformedResponse).
type NutritionOracle interface {
	RecognizeDish(ctx context.Context, image []byte, hint string) (*models.PendingCandidate, error)
}

// DiaryService orchestrates the estimate → confirm → commit flow and the
// manual-entry and reporting flows.
type DiaryService interface {
	// RequestEstimate asks the oracle about the photo and, on success,
	// stores the estimate as the user's pending candidate, replacing any
	// previous one.
	RequestEstimate(ctx context.Context, userID int64, image []byte, hint string) (*models.PendingCandidate, error)
	// ConfirmPending commits the user's pending candidate into the diary
	// and clears it. Returns ErrNoPending when there is nothing to confirm.
	ConfirmPending(ctx context.Context, userID int64) (*CommitResult, error)
	// AddManualMeal commits a meal typed in by the user, bypassing the
	// pending store.
	AddManualMeal(ctx context.Context, userID int64, name, caloriesText string) (*CommitResult, error)
	// DailyStats returns today's consumed/remaining totals and entries.
	DailyStats(ctx context.Context, userID int64) (*models.DailyStats, error)
	// ResetToday deletes today's entries; the goal and any pending
	// candidate are untouched.
	ResetToday(ctx context.Context, userID int64) error
	// SetGoal parses and stores a new daily calorie goal.
	SetGoal(ctx context.Context, userID int64, caloriesText string) (int, error)
}

// CommitResult is what a successful commit reports back: the entry that was
// written and the freshly recomputed daily stats.
type CommitResult struct {
	Name     string
	Calories int
	Stats    models.DailyStats
}
