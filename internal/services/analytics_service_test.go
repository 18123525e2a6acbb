package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizgen/quizgen-service/internal/models"
)

func sessionWith(questions []models.Question, answers map[string]string, score int) *models.QuizSession {
	return &models.QuizSession{
		ID:          "s1",
		Title:       "Mixed Topics",
		Questions:   questions,
		UserAnswers: answers,
		Score:       score,
		Completed:   true,
	}
}

func mixedQuestions() []models.Question {
	return []models.Question{
		{ID: "h1", Type: models.ShortAnswer, QuestionText: "Year of the French Revolution?", CorrectAnswer: "1789", Explanation: "It began in 1789.", Category: "History"},
		{ID: "h2", Type: models.ShortAnswer, QuestionText: "First Roman emperor?", CorrectAnswer: "Augustus", Explanation: "Augustus ruled from 27 BC.", Category: "History"},
		{ID: "m1", Type: models.ShortAnswer, QuestionText: "7 times 8?", CorrectAnswer: "56", Explanation: "7*8 = 56.", Category: "Math"},
		{ID: "m2", Type: models.ShortAnswer, QuestionText: "Square root of 81?", CorrectAnswer: "9", Explanation: "9*9 = 81.", Category: "Math"},
		{ID: "m3", Type: models.ShortAnswer, QuestionText: "10 divided by 4?", CorrectAnswer: "2.5", Explanation: "10/4 = 2.5.", Category: "Math"},
	}
}

func TestPercentage(t *testing.T) {
	t.Run("computes whole percents", func(t *testing.T) {
		s := sessionWith(mixedQuestions(), nil, 3)
		assert.Equal(t, 60, Percentage(s))

		s.Score = 2
		assert.Equal(t, 40, Percentage(s))
	})

	t.Run("rounds half up", func(t *testing.T) {
		questions := mixedQuestions()
		for _, id := range []string{"x1", "x2", "x3"} {
			questions = append(questions, models.Question{
				ID: id, Type: models.ShortAnswer, QuestionText: "Q?",
				CorrectAnswer: "A", Explanation: "Because.", Category: "Misc",
			})
		}
		s := sessionWith(questions, nil, 1)
		// 1 of 8 is 12.5 percent.
		assert.Equal(t, 13, Percentage(s))
	})

	t.Run("empty session scores zero", func(t *testing.T) {
		s := sessionWith(nil, nil, 0)
		assert.Equal(t, 0, Percentage(s))
	})

	t.Run("stays within bounds", func(t *testing.T) {
		s := sessionWith(mixedQuestions(), nil, 0)
		assert.Equal(t, 0, Percentage(s))

		s.Score = 5
		assert.Equal(t, 100, Percentage(s))
	})

	t.Run("is idempotent on a frozen session", func(t *testing.T) {
		s := sessionWith(mixedQuestions(), nil, 3)
		first := Percentage(s)
		for range 10 {
			assert.Equal(t, first, Percentage(s))
		}
	})
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		percentage int
		expected   PerformanceTier
	}{
		{100, TierHigh},
		{80, TierHigh},
		{79, TierMedium},
		{60, TierMedium},
		{59, TierLow},
		{0, TierLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TierFor(tt.percentage), "percentage %d", tt.percentage)
	}
}

func TestTierLabelFor(t *testing.T) {
	assert.Equal(t, "Excellent!", TierLabelFor(TierHigh))
	assert.Equal(t, "Good Job!", TierLabelFor(TierMedium))
	assert.Equal(t, "Keep Practicing", TierLabelFor(TierLow))
}

func TestTimeSpentLabel(t *testing.T) {
	assert.Equal(t, "3m 25s", TimeSpentLabel(205))
	assert.Equal(t, "0m 0s", TimeSpentLabel(0))
	assert.Equal(t, "1m 0s", TimeSpentLabel(60))
}

func TestCategoryBreakdown(t *testing.T) {
	// 2/2 in History, 1/3 in Math.
	answers := map[string]string{
		"h1": "1789",
		"h2": "Augustus",
		"m1": "56",
		"m2": "8",
		"m3": "3",
	}
	s := sessionWith(mixedQuestions(), answers, 3)

	stats := CategoryBreakdown(s)
	require.Len(t, stats, 2)

	// Sorted by category name.
	assert.Equal(t, "History", stats[0].Category)
	assert.Equal(t, 2, stats[0].Correct)
	assert.Equal(t, 2, stats[0].Total)
	assert.Equal(t, 100, stats[0].Percentage)

	assert.Equal(t, "Math", stats[1].Category)
	assert.Equal(t, 1, stats[1].Correct)
	assert.Equal(t, 3, stats[1].Total)
	assert.Equal(t, 33, stats[1].Percentage)
}

func TestCategoryBreakdownUnanswered(t *testing.T) {
	s := sessionWith(mixedQuestions(), map[string]string{"h1": "1789"}, 1)

	stats := CategoryBreakdown(s)
	require.Len(t, stats, 2)
	assert.Equal(t, 1, stats[0].Correct)
	assert.Equal(t, 2, stats[0].Total)
	assert.Equal(t, 0, stats[1].Correct)
	assert.Equal(t, 3, stats[1].Total)
}

func TestReviewList(t *testing.T) {
	answers := map[string]string{
		"h1": "1789",
		"m1": "54",
	}
	s := sessionWith(mixedQuestions(), answers, 1)

	var items []ReviewItem
	for item := range ReviewList(s) {
		items = append(items, item)
	}
	require.Len(t, items, 5)

	// Original question order is preserved.
	for i, item := range items {
		assert.Equal(t, i, item.Index)
		assert.Equal(t, s.Questions[i].ID, item.QuestionID)
	}

	assert.True(t, items[0].Correct)
	assert.True(t, items[0].Answered)
	assert.False(t, items[1].Answered)
	assert.False(t, items[2].Correct, "wrong answer must not count as correct")
	assert.Equal(t, "54", items[2].UserAnswer)
	assert.Equal(t, "56", items[2].CorrectAnswer)
}

func TestReviewListEarlyStop(t *testing.T) {
	s := sessionWith(mixedQuestions(), nil, 0)

	count := 0
	for range ReviewList(s) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestScoreSplit(t *testing.T) {
	s := sessionWith(mixedQuestions(), nil, 3)
	correct, incorrect := ScoreSplit(s)
	assert.Equal(t, 3, correct)
	assert.Equal(t, 2, incorrect)
}

func TestBuildResultsReport(t *testing.T) {
	answers := map[string]string{
		"h1": "1789",
		"h2": "Augustus",
		"m1": "56",
		"m2": "9",
		"m3": "4",
	}
	s := sessionWith(mixedQuestions(), answers, 4)
	s.TimeSpentSeconds = 205

	report := BuildResultsReport(s)

	assert.Equal(t, "s1", report.SessionID)
	assert.Equal(t, 4, report.Score)
	assert.Equal(t, 1, report.Incorrect)
	assert.Equal(t, 80, report.Percentage)
	assert.Equal(t, TierHigh, report.Tier)
	assert.Equal(t, "Excellent!", report.TierLabel)
	assert.Equal(t, "3m 25s", report.TimeSpentLabel)
	assert.Len(t, report.Categories, 2)
	assert.Len(t, report.Review, 5)
}

func TestSummarize(t *testing.T) {
	s := sessionWith(mixedQuestions(), nil, 3)

	summary := Summarize(s)
	assert.Equal(t, s.ID, summary.ID)
	assert.Equal(t, s.Title, summary.Title)
	assert.Equal(t, 5, summary.QuestionCount)
	assert.Equal(t, 3, summary.Score)
	assert.Equal(t, 60, summary.Percentage)
}
