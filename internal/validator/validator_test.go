package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/quizgen/quizgen-service/internal/errors"
	"github.com/quizgen/quizgen-service/internal/models"
)

func validQuizConfig() models.QuizConfig {
	return models.QuizConfig{
		SourceText:    "Some source material about geography.",
		SourceType:    models.SourceText,
		Difficulty:    models.DifficultyMedium,
		QuestionCount: 5,
		QuestionTypes: []models.QuestionType{models.MultipleChoice},
	}
}

func TestValidateQuizConfig(t *testing.T) {
	v := New()

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, v.Validate(validQuizConfig()))
	})

	t.Run("empty source text fails", func(t *testing.T) {
		config := validQuizConfig()
		config.SourceText = ""

		err := v.Validate(config)
		require.Error(t, err)

		var ve apperrors.ValidationErrors
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "source_text", ve[0].Field)
	})

	t.Run("unknown difficulty fails", func(t *testing.T) {
		config := validQuizConfig()
		config.Difficulty = "IMPOSSIBLE"

		err := v.Validate(config)
		require.Error(t, err)

		var ve apperrors.ValidationErrors
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "difficulty", ve[0].Field)
	})

	t.Run("unknown source type fails", func(t *testing.T) {
		config := validQuizConfig()
		config.SourceType = "carrier-pigeon"

		assert.Error(t, v.Validate(config))
	})

	t.Run("question count bounds", func(t *testing.T) {
		config := validQuizConfig()

		config.QuestionCount = 0
		assert.Error(t, v.Validate(config))

		config.QuestionCount = 21
		assert.Error(t, v.Validate(config))

		config.QuestionCount = 20
		assert.NoError(t, v.Validate(config))
	})

	t.Run("unknown question type fails", func(t *testing.T) {
		config := validQuizConfig()
		config.QuestionTypes = []models.QuestionType{"ESSAY"}

		assert.Error(t, v.Validate(config))
	})

	t.Run("empty question type list fails", func(t *testing.T) {
		config := validQuizConfig()
		config.QuestionTypes = nil

		assert.Error(t, v.Validate(config))
	})
}

func validQuestion() models.Question {
	return models.Question{
		ID:            "q1",
		Type:          models.MultipleChoice,
		QuestionText:  "Capital of France?",
		Options:       []string{"Paris", "Rome", "Berlin", "Madrid"},
		CorrectAnswer: "Paris",
		Explanation:   "Paris is the capital of France.",
		Category:      "Geography",
	}
}

func TestQuestionValidator(t *testing.T) {
	v := NewQuestionValidator()

	t.Run("valid question passes", func(t *testing.T) {
		q := validQuestion()
		assert.NoError(t, v.ValidateQuestion(&q))
	})

	t.Run("correct answer must match an option", func(t *testing.T) {
		q := validQuestion()
		q.CorrectAnswer = "Lyon"
		assert.Error(t, v.ValidateQuestion(&q))
	})

	t.Run("multiple choice needs at least two options", func(t *testing.T) {
		q := validQuestion()
		q.Options = []string{"Paris"}
		assert.Error(t, v.ValidateQuestion(&q))
	})

	t.Run("true false needs exactly two options", func(t *testing.T) {
		q := validQuestion()
		q.Type = models.TrueFalse
		q.Options = []string{"True", "False", "Maybe"}
		assert.Error(t, v.ValidateQuestion(&q))

		q.Options = []string{"True", "False"}
		q.CorrectAnswer = "True"
		assert.NoError(t, v.ValidateQuestion(&q))
	})

	t.Run("free text types must not carry options", func(t *testing.T) {
		q := validQuestion()
		q.Type = models.ShortAnswer
		assert.Error(t, v.ValidateQuestion(&q))

		q.Options = nil
		assert.NoError(t, v.ValidateQuestion(&q))
	})

	t.Run("blank fields fail", func(t *testing.T) {
		for _, mutate := range []func(*models.Question){
			func(q *models.Question) { q.QuestionText = "  " },
			func(q *models.Question) { q.Explanation = "" },
			func(q *models.Question) { q.Category = "" },
			func(q *models.Question) { q.CorrectAnswer = "" },
		} {
			q := validQuestion()
			mutate(&q)
			assert.Error(t, v.ValidateQuestion(&q))
		}
	})
}

func TestValidateBatch(t *testing.T) {
	v := NewQuestionValidator()

	t.Run("empty batch fails", func(t *testing.T) {
		assert.Error(t, v.ValidateBatch(nil))
	})

	t.Run("duplicate ids fail", func(t *testing.T) {
		q1 := validQuestion()
		q2 := validQuestion()
		assert.Error(t, v.ValidateBatch([]models.Question{q1, q2}))
	})

	t.Run("one bad question fails the whole batch", func(t *testing.T) {
		good := validQuestion()
		bad := validQuestion()
		bad.ID = "q2"
		bad.CorrectAnswer = "Lyon"

		err := v.ValidateBatch([]models.Question{good, bad})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "question 2")
	})
}
