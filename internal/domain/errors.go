package domain

import "errors"

var (
	// ErrNoQuestions is returned when the filtered catalog has no usable questions.
	ErrNoQuestions = errors.New("no questions available")
	// ErrSessionNotFound is returned when a player acts without an active session.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrMalformedQuestion indicates a catalog entry violating answer integrity rules.
	ErrMalformedQuestion = errors.New("malformed question data")
	// ErrChallengeUnavailable indicates today's challenge could not be built.
	ErrChallengeUnavailable = errors.New("daily challenge unavailable")
	// ErrAlreadyPlayed indicates a repeat daily challenge submission for the same date.
	ErrAlreadyPlayed = errors.New("daily challenge already played")
)
