package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"calorie-tracker-bot/internal/features/diary/models"
	"calorie-tracker-bot/internal/features/diary/pending"
	"calorie-tracker-bot/internal/features/diary/repository"
)

type diaryService struct {
	ledger  repository.LedgerRepository
	pending pending.Store
	oracle  NutritionOracle
}

func NewDiaryService(ledger repository.LedgerRepository, pendingStore pending.Store, oracle NutritionOracle) DiaryService {
	return &diaryService{
		ledger:  ledger,
		pending: pendingStore,
		oracle:  oracle,
	}
}

func (s *diaryService) RequestEstimate(ctx context.Context, userID int64, image []byte, hint string) (*models.PendingCandidate, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	candidate, err := s.oracle.RecognizeDish(ctx, image, hint)
	if err != nil {
		// Not-found and malformed answers pass through untouched; the
		// pending store is never mutated on any failure.
		return nil, err
	}

	if err := s.pending.Set(ctx, userID, candidate); err != nil {
		return nil, fmt.Errorf("failed to store pending meal: %w", err)
	}
	return candidate, nil
}

func (s *diaryService) ConfirmPending(ctx context.Context, userID int64) (*CommitResult, error) {
	candidate, err := s.pending.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pending.ErrNotFound) {
			return nil, ErrNoPending
		}
		return nil, fmt.Errorf("failed to read pending meal: %w", err)
	}

	result, err := s.commit(ctx, userID, candidate.Name, candidate.Calories)
	if err != nil {
		return nil, err
	}

	if err := s.pending.Delete(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to clear pending meal: %w", err)
	}
	return result, nil
}

func (s *diaryService) AddManualMeal(ctx context.Context, userID int64, name, caloriesText string) (*CommitResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	calories, err := strconv.Atoi(strings.TrimSpace(caloriesText))
	if err != nil || calories < 0 {
		return nil, ErrInvalidCalories
	}
	return s.commit(ctx, userID, name, calories)
}

func (s *diaryService) commit(ctx context.Context, userID int64, name string, calories int) (*CommitResult, error) {
	if err := s.ledger.AppendMeal(ctx, userID, name, calories, models.Today()); err != nil {
		return nil, fmt.Errorf("failed to append meal: %w", err)
	}
	stats, err := s.DailyStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &CommitResult{Name: name, Calories: calories, Stats: *stats}, nil
}

func (s *diaryService) DailyStats(ctx context.Context, userID int64) (*models.DailyStats, error) {
	today := models.Today()

	goal, err := s.ledger.GetOrInitGoal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	consumed, err := s.ledger.SumCalories(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to sum calories: %w", err)
	}
	meals, err := s.ledger.ListMeals(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	return &models.DailyStats{
		Goal:      goal,
		Consumed:  consumed,
		Remaining: goal - consumed,
		Meals:     meals,
	}, nil
}

func (s *diaryService) ResetToday(ctx context.Context, userID int64) error {
	if err := s.ledger.DeleteMeals(ctx, userID, models.Today()); err != nil {
		return fmt.Errorf("failed to reset today: %w", err)
	}
	return nil
}

func (s *diaryService) SetGoal(ctx context.Context, userID int64, caloriesText string) (int, error) {
	goal, err := strconv.Atoi(strings.TrimSpace(caloriesText))
	if err != nil || goal < 0 {
		return 0, ErrInvalidGoal
	}
	if err := s.ledger.SetGoal(ctx, userID, goal); err != nil {
		return 0, fmt.Errorf("failed to set goal: %w", err)
	}
	return goal, nil
}
