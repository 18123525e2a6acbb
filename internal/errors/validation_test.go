package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	// Test NewValidationError
	err := NewValidationError("source_text", "is required", "")

	if err.Field != "source_text" {
		t.Errorf("Expected field to be 'source_text', got '%s'", err.Field)
	}

	if err.Message != "is required" {
		t.Errorf("Expected message to be 'is required', got '%s'", err.Message)
	}

	// Test Error method
	expected := "validation error on field 'source_text': is required"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	// Test empty ValidationErrors
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	// Test single ValidationError
	errs = append(errs, *NewValidationError("difficulty", "must be EASY, MEDIUM, or HARD", nil))
	expected := "validation failed: difficulty must be EASY, MEDIUM, or HARD"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	// Test multiple ValidationErrors
	errs = append(errs, *NewValidationError("question_count", "must be at most 20", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("question_count", "must be at least 1", "min", 0)

	if err.Rule != "min" {
		t.Errorf("Expected rule to be 'min', got '%s'", err.Rule)
	}

	if err.Field != "question_count" {
		t.Errorf("Expected field to be 'question_count', got '%s'", err.Field)
	}
}
