package models

import "slices"

type QuestionType string

const (
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
	TrueFalse      QuestionType = "TRUE_FALSE"
	ShortAnswer    QuestionType = "SHORT_ANSWER"
	FillInTheBlank QuestionType = "FILL_IN_THE_BLANK"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "EASY"
	DifficultyMedium DifficultyLevel = "MEDIUM"
	DifficultyHard   DifficultyLevel = "HARD"
)

type SourceType string

const (
	SourceText SourceType = "text"
	SourceURL  SourceType = "url"
	SourceFile SourceType = "file"
)

// AllQuestionTypes lists every supported question type, in display order.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{MultipleChoice, TrueFalse, ShortAnswer, FillInTheBlank}
}

// Question is a single generated quiz question. Questions are immutable once
// a session has been created from them.
type Question struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type" validate:"required,question_type"`
	QuestionText  string       `json:"questionText" validate:"required"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer" validate:"required"`
	Explanation   string       `json:"explanation" validate:"required"`
	Category      string       `json:"category" validate:"required"`
}

// HasOptions reports whether the question presents a fixed option list.
func (q *Question) HasOptions() bool {
	return len(q.Options) > 0
}

// AcceptsOption reports whether answer matches one of the question's options.
// Comparison is exact and case-sensitive.
func (q *Question) AcceptsOption(answer string) bool {
	return slices.Contains(q.Options, answer)
}

// IsCorrect reports whether answer matches the correct answer exactly.
func (q *Question) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}
