package pending

import (
	"context"
	"errors"

	"calorie-tracker-bot/internal/features/diary/models"
)

// ErrNotFound is returned when a user has no unconfirmed candidate.
var ErrNotFound = errors.New("no pending candidate")

// Store keeps at most one unconfirmed nutrition estimate per user.
// Set replaces any existing candidate for the same user.
type Store interface {
	Set(ctx context.Context, userID int64, candidate *models.PendingCandidate) error
	Get(ctx context.Context, userID int64) (*models.PendingCandidate, error)
	Delete(ctx context.Context, userID int64) error
}
