package services

import (
	"fmt"
	"iter"
	"math"
	"sort"

	"github.com/quizgen/quizgen-service/internal/models"
)

// Scoring and analytics over quiz sessions. Everything here is a pure function
// of a session value; nothing mutates the session or touches shared state, so
// results for a frozen session never change.

// PerformanceTier buckets a percentage score for the results view.
type PerformanceTier string

const (
	TierHigh   PerformanceTier = "high"
	TierMedium PerformanceTier = "medium"
	TierLow    PerformanceTier = "low"
)

// CategoryStat is the per-category accuracy for the results breakdown.
type CategoryStat struct {
	Category   string `json:"category"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// ReviewItem is one row of the answer review list, in original question order.
type ReviewItem struct {
	Index         int    `json:"index"`
	QuestionID    string `json:"question_id"`
	QuestionText  string `json:"question_text"`
	Category      string `json:"category"`
	UserAnswer    string `json:"user_answer"`
	Answered      bool   `json:"answered"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	Correct       bool   `json:"correct"`
}

// ResultsReport is the full analytics read model for a session.
type ResultsReport struct {
	SessionID        string          `json:"session_id"`
	Title            string          `json:"title"`
	Score            int             `json:"score"`
	QuestionCount    int             `json:"question_count"`
	Incorrect        int             `json:"incorrect"`
	Percentage       int             `json:"percentage"`
	Tier             PerformanceTier `json:"tier"`
	TierLabel        string          `json:"tier_label"`
	TimeSpentSeconds int             `json:"time_spent_seconds"`
	TimeSpentLabel   string          `json:"time_spent_label"`
	Categories       []CategoryStat  `json:"categories"`
	Review           []ReviewItem    `json:"review"`
}

// Percentage returns the overall score as a whole percent, rounded half-up.
// An empty session scores zero rather than dividing by zero.
func Percentage(s *models.QuizSession) int {
	return ratioPercent(s.Score, s.QuestionCount())
}

// ScoreSplit returns the correct and incorrect counts. Unanswered questions in
// an unfinished session count as incorrect.
func ScoreSplit(s *models.QuizSession) (correct, incorrect int) {
	return s.Score, s.QuestionCount() - s.Score
}

// TierFor buckets a percentage: 80 and above is high, 60 and above is medium.
func TierFor(percentage int) PerformanceTier {
	switch {
	case percentage >= 80:
		return TierHigh
	case percentage >= 60:
		return TierMedium
	default:
		return TierLow
	}
}

// TierLabelFor returns the display label for a tier.
func TierLabelFor(tier PerformanceTier) string {
	switch tier {
	case TierHigh:
		return "Excellent!"
	case TierMedium:
		return "Good Job!"
	default:
		return "Keep Practicing"
	}
}

// TimeSpentLabel formats a duration in seconds as "3m 25s".
func TimeSpentLabel(seconds int) string {
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// CategoryBreakdown computes per-category accuracy, sorted by category name
// for a stable presentation order. Unanswered questions count against their
// category.
func CategoryBreakdown(s *models.QuizSession) []CategoryStat {
	totals := make(map[string]*CategoryStat)
	for _, q := range s.Questions {
		stat, ok := totals[q.Category]
		if !ok {
			stat = &CategoryStat{Category: q.Category}
			totals[q.Category] = stat
		}
		stat.Total++
		if answer, answered := s.UserAnswers[q.ID]; answered && q.IsCorrect(answer) {
			stat.Correct++
		}
	}

	stats := make([]CategoryStat, 0, len(totals))
	for _, stat := range totals {
		stat.Percentage = ratioPercent(stat.Correct, stat.Total)
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Category < stats[j].Category })
	return stats
}

// ReviewList yields one ReviewItem per question, in original question order.
func ReviewList(s *models.QuizSession) iter.Seq[ReviewItem] {
	return func(yield func(ReviewItem) bool) {
		for i, q := range s.Questions {
			answer, answered := s.UserAnswers[q.ID]
			item := ReviewItem{
				Index:         i,
				QuestionID:    q.ID,
				QuestionText:  q.QuestionText,
				Category:      q.Category,
				UserAnswer:    answer,
				Answered:      answered,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   q.Explanation,
				Correct:       answered && q.IsCorrect(answer),
			}
			if !yield(item) {
				return
			}
		}
	}
}

// BuildResultsReport assembles the complete analytics read model for a session.
func BuildResultsReport(s *models.QuizSession) *ResultsReport {
	percentage := Percentage(s)
	tier := TierFor(percentage)
	correct, incorrect := ScoreSplit(s)

	var review []ReviewItem
	for item := range ReviewList(s) {
		review = append(review, item)
	}

	return &ResultsReport{
		SessionID:        s.ID,
		Title:            s.Title,
		Score:            correct,
		QuestionCount:    s.QuestionCount(),
		Incorrect:        incorrect,
		Percentage:       percentage,
		Tier:             tier,
		TierLabel:        TierLabelFor(tier),
		TimeSpentSeconds: s.TimeSpentSeconds,
		TimeSpentLabel:   TimeSpentLabel(s.TimeSpentSeconds),
		Categories:       CategoryBreakdown(s),
		Review:           review,
	}
}

// Summarize builds the history listing read model for a session.
func Summarize(s *models.QuizSession) models.SessionSummary {
	return models.SessionSummary{
		ID:            s.ID,
		Title:         s.Title,
		CreatedAt:     s.CreatedAt,
		QuestionCount: s.QuestionCount(),
		Score:         s.Score,
		Percentage:    Percentage(s),
	}
}

func ratioPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
