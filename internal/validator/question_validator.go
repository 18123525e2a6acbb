package validator

import (
	"fmt"
	"strings"

	"github.com/quizgen/quizgen-service/internal/models"
)

// QuestionValidator checks generated questions against the session
// invariants. It runs at the gateway boundary: a batch that fails here is a
// generation failure, never a partially accepted quiz.
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion validates a single generated question.
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if strings.TrimSpace(question.QuestionText) == "" {
		return fmt.Errorf("question text is required")
	}

	if strings.TrimSpace(question.Explanation) == "" {
		return fmt.Errorf("explanation is required")
	}

	if strings.TrimSpace(question.Category) == "" {
		return fmt.Errorf("category is required")
	}

	if question.CorrectAnswer == "" {
		return fmt.Errorf("correct answer is required")
	}

	validType := false
	for _, qt := range models.AllQuestionTypes() {
		if question.Type == qt {
			validType = true
			break
		}
	}
	if !validType {
		return fmt.Errorf("unsupported question type: %s", question.Type)
	}

	return v.validateOptions(question)
}

// ValidateBatch validates a complete generated question set: every question
// individually, plus id uniqueness across the batch.
func (v *QuestionValidator) ValidateBatch(questions []models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("question batch cannot be empty")
	}

	seen := make(map[string]bool, len(questions))
	for i := range questions {
		if err := v.ValidateQuestion(&questions[i]); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
		if id := questions[i].ID; id != "" {
			if seen[id] {
				return fmt.Errorf("duplicate question id %q", id)
			}
			seen[id] = true
		}
	}

	return nil
}

// validateOptions enforces the option rules per question type: option-based
// types must carry options containing the correct answer exactly; free-text
// types must not carry options.
func (v *QuestionValidator) validateOptions(question *models.Question) error {
	switch question.Type {
	case models.MultipleChoice:
		if len(question.Options) < 2 {
			return fmt.Errorf("multiple choice must have at least 2 options")
		}
	case models.TrueFalse:
		if len(question.Options) != 2 {
			return fmt.Errorf("true/false must have exactly 2 options")
		}
	case models.ShortAnswer, models.FillInTheBlank:
		if len(question.Options) > 0 {
			return fmt.Errorf("%s questions must not have options", question.Type)
		}
		return nil
	}

	for _, option := range question.Options {
		if strings.TrimSpace(option) == "" {
			return fmt.Errorf("option text cannot be empty")
		}
	}

	if !question.AcceptsOption(question.CorrectAnswer) {
		return fmt.Errorf("correct answer %q does not match any option", question.CorrectAnswer)
	}

	return nil
}
