package domain

import "errors"

var (
	// ErrGoalNotFound is returned when no calorie goal exists for a pet
	ErrGoalNotFound = errors.New("calorie goal not found")

	// ErrPetNotFound is returned when a pet cannot be found
	ErrPetNotFound = errors.New("pet not found")

	// ErrNoWeightData is returned when a pet has no weight records
	ErrNoWeightData = errors.New("no weight data recorded")

	// ErrNoActiveGoal is returned when a pet has no active weight goal
	ErrNoActiveGoal = errors.New("no active weight goal")

	// ErrNotFound is returned when the remote API reports a missing resource
	ErrNotFound = errors.New("resource not found")

	// ErrAPIFailure is returned when a remote API request fails
	ErrAPIFailure = errors.New("remote API request failed")

	// ErrInvalidInput is returned when request parameters are invalid
	ErrInvalidInput = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
