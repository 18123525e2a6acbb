package services

import (
	"errors"

	apperrors "github.com/quizgen/quizgen-service/internal/errors"
	"github.com/quizgen/quizgen-service/internal/gateway"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrValidationFailed = errors.New("validation failed")

	// Generation errors
	ErrGenerationInProgress = errors.New("a quiz generation is already in progress")
	ErrGenerationSuperseded = errors.New("generation result discarded - state has moved on")

	// Session / transition errors
	ErrNoActiveSession       = errors.New("no active quiz session")
	ErrSessionCompleted      = errors.New("session is already completed")
	ErrSessionNotCompleted   = errors.New("session is not completed")
	ErrAnswerAlreadyRecorded = errors.New("answer already recorded for this question")
	ErrQuestionNotAnswered   = errors.New("current question has not been answered")
	ErrNotOnHomeView         = errors.New("quiz generation is only allowed from the home view")
	ErrNotOnResultsView      = errors.New("operation is only allowed from the results view")

	// History errors
	ErrHistoryEntryNotFound = errors.New("history entry not found")
)

// UserGenerationErrorMessage is the single user-safe message surfaced for any
// gateway failure. Raw provider errors are logged, never shown.
const UserGenerationErrorMessage = "Failed to generate quiz. Please try again or check the content source."

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsIllegalTransition checks if error represents a rejected state transition
func IsIllegalTransition(err error) bool {
	return errors.Is(err, ErrGenerationInProgress) ||
		errors.Is(err, ErrNoActiveSession) ||
		errors.Is(err, ErrSessionCompleted) ||
		errors.Is(err, ErrSessionNotCompleted) ||
		errors.Is(err, ErrAnswerAlreadyRecorded) ||
		errors.Is(err, ErrQuestionNotAnswered) ||
		errors.Is(err, ErrNotOnHomeView) ||
		errors.Is(err, ErrNotOnResultsView)
}

// IsGenerationFailure checks if error came from the question generation gateway
func IsGenerationFailure(err error) bool {
	return errors.Is(err, gateway.ErrGenerationFailed)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrHistoryEntryNotFound)
}
