package gateway

import (
	"context"
	"errors"

	"github.com/quizgen/quizgen-service/internal/models"
)

// ErrGenerationFailed marks any failure of the question generation gateway:
// missing credentials, transport errors, malformed upstream responses, or
// generated output that violates the question invariants. Callers surface a
// generic message and must not forward the wrapped detail to users.
var ErrGenerationFailed = errors.New("quiz generation failed")

// ErrMissingAPIKey is returned before any network call when no credential is configured.
var ErrMissingAPIKey = errors.New("gateway API key is not configured")

// GeneratedQuiz is the validated output of a generation call.
type GeneratedQuiz struct {
	Title     string            `json:"title"`
	Questions []models.Question `json:"questions"`
}

// Generator turns a quiz configuration into a titled question set. The only
// network boundary of the application sits behind this interface.
type Generator interface {
	Generate(ctx context.Context, config models.QuizConfig) (*GeneratedQuiz, error)
}
