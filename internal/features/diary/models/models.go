package models

import "time"

// DateFormat is the calendar-date layout used for meal entries. Entries
// carry no time component.
const DateFormat = "2006-01-02"

// DefaultDailyGoal is the calorie goal assigned to a user on first contact.
const DefaultDailyGoal = 2000

// MealEntry is a committed diary record. Immutable once written; removed
// only in bulk by a same-day reset.
type MealEntry struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Date     string `json:"date"` // YYYY-MM-DD
}

// PendingCandidate is an unconfirmed nutrition estimate. At most one exists
// per user; a newer estimate silently replaces it.
type PendingCandidate struct {
	Name           string   `json:"name"`
	WeightGrams    *float64 `json:"weight_g,omitempty"`
	Calories       int      `json:"calories"`
	ProteinGrams   float64  `json:"protein_g"`
	FatGrams       float64  `json:"fat_g"`
	CarbsGrams     float64  `json:"carbs_g"`
	CaloriesPer100 *float64 `json:"calories_per_100g,omitempty"`
}

// DailyStats is derived on demand and never stored.
type DailyStats struct {
	Goal      int         `json:"goal"`
	Consumed  int         `json:"consumed"`
	Remaining int         `json:"remaining"`
	Meals     []MealEntry `json:"meals"`
}

// Today returns the current calendar date in entry format.
func Today() string {
	return time.Now().Format(DateFormat)
}
