package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/quizgen/quizgen-service/internal/models"
	"github.com/quizgen/quizgen-service/internal/utils"
)

func completedSession() *models.QuizSession {
	return &models.QuizSession{
		ID:    "s1",
		Title: "World Capitals",
		Questions: []models.Question{
			{ID: "q1", Type: models.MultipleChoice, QuestionText: "Capital of France?", Options: []string{"Paris", "Rome"}, CorrectAnswer: "Paris", Explanation: "Paris is the capital.", Category: "Geography"},
			{ID: "q2", Type: models.MultipleChoice, QuestionText: "Capital of Italy?", Options: []string{"Rome", "Milan"}, CorrectAnswer: "Rome", Explanation: "Rome is the capital.", Category: "Geography"},
		},
		UserAnswers:      map[string]string{"q1": "Paris", "q2": "Milan"},
		Score:            1,
		Completed:        true,
		TimeSpentSeconds: 95,
	}
}

func TestExportResultsToExcel(t *testing.T) {
	service := NewExportService(utils.NewDevelopmentLogger())

	data, err := service.ExportResultsToExcel(completedSession())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Summary")
	assert.Contains(t, f.GetSheetList(), "Review")

	title, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "World Capitals", title)

	score, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "1 / 2", score)

	percentage, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "50%", percentage)

	rows, err := f.GetRows("Review")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Question", rows[0][1])
	assert.Equal(t, "Correct", rows[1][5])
	assert.Equal(t, "Incorrect", rows[2][5])
}

func TestExportResultsToCSV(t *testing.T) {
	service := NewExportService(utils.NewDevelopmentLogger())

	data, err := service.ExportResultsToCSV(completedSession())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, reviewHeaders, records[0])
	assert.Equal(t, "Capital of France?", records[1][1])
	assert.Equal(t, "Correct", records[1][5])
	assert.Equal(t, "Milan", records[2][3])
	assert.Equal(t, "Incorrect", records[2][5])
}

func TestShareText(t *testing.T) {
	service := NewExportService(utils.NewDevelopmentLogger())

	text := service.ShareText(completedSession())
	assert.Equal(t, `I scored 50% on "World Capitals"!`, text)
}
