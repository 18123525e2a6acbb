package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the session lifecycle events emitted by the state machine
type EventType string

const (
	EventQuizGenerated    EventType = "quiz.generated"
	EventGenerationFailed EventType = "quiz.generation_failed"
	EventSessionCompleted EventType = "session.completed"
	EventSessionAbandoned EventType = "session.abandoned"
)

// TopicQuizLifecycle is the single topic all lifecycle events are published to.
const TopicQuizLifecycle = "quiz.lifecycle"

// QuizEvent is the envelope for all lifecycle events
type QuizEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Data      interface{} `json:"data"`
}

// Event payloads

type QuizGeneratedEvent struct {
	SessionID     string `json:"session_id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
	SourceType    string `json:"source_type"`
	Difficulty    string `json:"difficulty"`
}

type GenerationFailedEvent struct {
	SourceType string `json:"source_type"`
	Reason     string `json:"reason"`
}

type SessionCompletedEvent struct {
	SessionID        string `json:"session_id"`
	Title            string `json:"title"`
	Score            int    `json:"score"`
	QuestionCount    int    `json:"question_count"`
	Percentage       int    `json:"percentage"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

type SessionAbandonedEvent struct {
	SessionID     string `json:"session_id"`
	AnsweredCount int    `json:"answered_count"`
	QuestionCount int    `json:"question_count"`
}

// Event factory functions

func NewQuizGeneratedEvent(sessionID, title string, questionCount int, sourceType, difficulty string) *QuizEvent {
	return newEvent(EventQuizGenerated, QuizGeneratedEvent{
		SessionID:     sessionID,
		Title:         title,
		QuestionCount: questionCount,
		SourceType:    sourceType,
		Difficulty:    difficulty,
	})
}

func NewGenerationFailedEvent(sourceType, reason string) *QuizEvent {
	return newEvent(EventGenerationFailed, GenerationFailedEvent{
		SourceType: sourceType,
		Reason:     reason,
	})
}

func NewSessionCompletedEvent(sessionID, title string, score, questionCount, percentage, timeSpentSeconds int) *QuizEvent {
	return newEvent(EventSessionCompleted, SessionCompletedEvent{
		SessionID:        sessionID,
		Title:            title,
		Score:            score,
		QuestionCount:    questionCount,
		Percentage:       percentage,
		TimeSpentSeconds: timeSpentSeconds,
	})
}

func NewSessionAbandonedEvent(sessionID string, answeredCount, questionCount int) *QuizEvent {
	return newEvent(EventSessionAbandoned, SessionAbandonedEvent{
		SessionID:     sessionID,
		AnsweredCount: answeredCount,
		QuestionCount: questionCount,
	})
}

func newEvent(eventType EventType, data interface{}) *QuizEvent {
	return &QuizEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "quizgen-service",
		Version:   "1.0",
		Data:      data,
	}
}
