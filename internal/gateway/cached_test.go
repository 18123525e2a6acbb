package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizgen/quizgen-service/internal/cache"
	"github.com/quizgen/quizgen-service/internal/models"
	"github.com/quizgen/quizgen-service/internal/utils"
)

type countingGenerator struct {
	quiz  *GeneratedQuiz
	err   error
	calls int
}

func (g *countingGenerator) Generate(_ context.Context, _ models.QuizConfig) (*GeneratedQuiz, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.quiz, nil
}

func TestCachedGenerator(t *testing.T) {
	quiz := &GeneratedQuiz{
		Title: "Cached Quiz",
		Questions: []models.Question{
			{ID: "q1", Type: models.ShortAnswer, QuestionText: "Q?", CorrectAnswer: "A", Explanation: "Because.", Category: "General"},
		},
	}

	t.Run("identical configs hit the cache", func(t *testing.T) {
		inner := &countingGenerator{quiz: quiz}
		cached := NewCachedGenerator(inner, cache.NewMemoryCache(), time.Minute, utils.NewDevelopmentLogger())

		config := testConfig()
		first, err := cached.Generate(context.Background(), config)
		require.NoError(t, err)
		second, err := cached.Generate(context.Background(), config)
		require.NoError(t, err)

		assert.Equal(t, 1, inner.calls)
		assert.Equal(t, first.Title, second.Title)
	})

	t.Run("different configs miss", func(t *testing.T) {
		inner := &countingGenerator{quiz: quiz}
		cached := NewCachedGenerator(inner, cache.NewMemoryCache(), time.Minute, utils.NewDevelopmentLogger())

		_, err := cached.Generate(context.Background(), testConfig())
		require.NoError(t, err)

		other := testConfig()
		other.Difficulty = models.DifficultyHard
		_, err = cached.Generate(context.Background(), other)
		require.NoError(t, err)

		assert.Equal(t, 2, inner.calls)
	})

	t.Run("failures are not cached", func(t *testing.T) {
		inner := &countingGenerator{err: errors.New("boom")}
		cached := NewCachedGenerator(inner, cache.NewMemoryCache(), time.Minute, utils.NewDevelopmentLogger())

		_, err := cached.Generate(context.Background(), testConfig())
		require.Error(t, err)

		inner.err = nil
		inner.quiz = quiz
		result, err := cached.Generate(context.Background(), testConfig())
		require.NoError(t, err)
		assert.Equal(t, "Cached Quiz", result.Title)
		assert.Equal(t, 2, inner.calls)
	})
}
