package service

import "errors"

// Custom errors for diary service
var (
	ErrInvalidGoal     = errors.New("goal must be a non-negative integer")
	ErrInvalidCalories = errors.New("calories must be an integer")
	ErrEmptyName       = errors.New("meal name must not be empty")
	ErrEmptyImage      = errors.New("image payload must not be empty")
	ErrNoPending       = errors.New("no pending meal to confirm")
)
