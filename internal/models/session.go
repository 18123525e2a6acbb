package models

import (
	"time"

	"github.com/google/uuid"
)

// QuizConfig is the input to quiz generation. It is validated locally before
// any gateway call and is never persisted.
type QuizConfig struct {
	SourceText    string          `json:"source_text" validate:"required"`
	SourceType    SourceType      `json:"source_type" validate:"required,source_type"`
	Difficulty    DifficultyLevel `json:"difficulty" validate:"required,difficulty_level"`
	QuestionCount int             `json:"question_count" validate:"required,min=1,max=20"`
	QuestionTypes []QuestionType  `json:"question_types" validate:"required,min=1,dive,question_type"`
}

// QuizSession is one run through a generated question set, from creation to
// (optionally) completion. The question list is fixed at creation; answers,
// score and elapsed time accumulate until the session is finalized, after
// which the whole value is frozen.
type QuizSession struct {
	ID               string            `json:"id"`
	CreatedAt        time.Time         `json:"created_at"`
	Title            string            `json:"title"`
	Questions        []Question        `json:"questions"`
	UserAnswers      map[string]string `json:"user_answers"`
	Score            int               `json:"score"`
	Completed        bool              `json:"completed"`
	TimeSpentSeconds int               `json:"time_spent_seconds"`
}

// NewQuizSession builds a fresh session over a generated question set.
func NewQuizSession(title string, questions []Question, now time.Time) *QuizSession {
	return &QuizSession{
		ID:          uuid.New().String(),
		CreatedAt:   now,
		Title:       title,
		Questions:   questions,
		UserAnswers: make(map[string]string),
	}
}

// NewRetrySession builds a new session sharing this session's questions and
// title, with a fresh identity and all mutable state reset.
func (s *QuizSession) NewRetrySession(now time.Time) *QuizSession {
	return NewQuizSession(s.Title, s.Questions, now)
}

// Clone returns a deep-enough copy for copy-on-write mutation: the answer map
// is copied, the immutable question list is shared.
func (s *QuizSession) Clone() *QuizSession {
	answers := make(map[string]string, len(s.UserAnswers))
	for id, answer := range s.UserAnswers {
		answers[id] = answer
	}
	clone := *s
	clone.UserAnswers = answers
	return &clone
}

// QuestionCount returns the fixed number of questions in the session.
func (s *QuizSession) QuestionCount() int {
	return len(s.Questions)
}

// Answered reports whether the question with the given id has a recorded answer.
func (s *QuizSession) Answered(questionID string) bool {
	_, ok := s.UserAnswers[questionID]
	return ok
}

// AnsweredCount returns the number of recorded answers.
func (s *QuizSession) AnsweredCount() int {
	return len(s.UserAnswers)
}

// SessionSummary is the read model for history listings.
type SessionSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
	QuestionCount int       `json:"question_count"`
	Score         int       `json:"score"`
	Percentage    int       `json:"percentage"`
}
