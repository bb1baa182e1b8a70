package domain

import "errors"

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
)

// Gating errors are expected, recoverable outcomes of the reward engine.
// They are always returned (never swallowed) so the caller can branch with
// errors.Is and render the matching flow.
var (
	// ErrOutOfHearts means a free-tier user attempted a non-practice
	// challenge with zero hearts left.
	ErrOutOfHearts = errors.New("hearts")

	// ErrPracticeChallenge means a heart decrement was requested for a
	// challenge the user has already mastered. Wrong answers on mastered
	// challenges never cost hearts.
	ErrPracticeChallenge = errors.New("practice")

	// ErrHeartsFull means a refill was requested at the hearts ceiling.
	ErrHeartsFull = errors.New("hearts are already full")

	// ErrNotEnoughPoints means the user cannot afford a hearts refill.
	ErrNotEnoughPoints = errors.New("not enough points")
)
