package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"calorie-tracker-bot/internal/features/diary/models"
)

type estimatePayload struct {
	Name           *string  `json:"name"`
	WeightGrams    *float64 `json:"weight_g"`
	Calories       *float64 `json:"calories"`
	ProteinGrams   float64  `json:"protein_g"`
	FatGrams       float64  `json:"fat_g"`
	CarbsGrams     float64  `json:"carbs_g"`
	CaloriesPer100 *float64 `json:"calories_per_100g"`
}

// ParseEstimate interprets the model's raw answer. The not-found sentinel
// (matched case-sensitively anywhere in the trimmed text) maps to
// ErrDishNotFound; anything that is not a JSON object with at least name and
// calories maps to ErrMalformedResponse.
func ParseEstimate(raw string) (*models.PendingCandidate, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty answer", ErrMalformedResponse)
	}
	if strings.Contains(text, SentinelNotFound) {
		return nil, ErrDishNotFound
	}

	// Models occasionally wrap the object in prose or code fences despite
	// instructions; take the outermost braces.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in answer", ErrMalformedResponse)
	}

	var payload estimatePayload
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.Name == nil || *payload.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrMalformedResponse)
	}
	if payload.Calories == nil {
		return nil, fmt.Errorf("%w: missing calories", ErrMalformedResponse)
	}

	calories := int(*payload.Calories)
	if calories < 0 {
		calories = 0
	}

	return &models.PendingCandidate{
		Name:           *payload.Name,
		WeightGrams:    payload.WeightGrams,
		Calories:       calories,
		ProteinGrams:   payload.ProteinGrams,
		FatGrams:       payload.FatGrams,
		CarbsGrams:     payload.CarbsGrams,
		CaloriesPer100: payload.CaloriesPer100,
	}, nil
}
