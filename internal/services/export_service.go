package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/quizgen/quizgen-service/internal/models"
	"github.com/quizgen/quizgen-service/internal/utils"
	"github.com/xuri/excelize/v2"
)

// ExportService renders completed session results as downloadable files and
// share text. Only completed sessions are exported; handlers enforce that.
type ExportService struct {
	logger utils.Logger
}

// NewExportService creates a new export service
func NewExportService(logger utils.Logger) *ExportService {
	return &ExportService{logger: logger}
}

var reviewHeaders = []string{
	"#", "Question", "Category", "Your Answer", "Correct Answer", "Result", "Explanation",
}

// ExportResultsToExcel renders the results of a completed session as an xlsx
// workbook: a summary sheet and a per-question review sheet.
func (s *ExportService) ExportResultsToExcel(session *models.QuizSession) ([]byte, error) {
	report := BuildResultsReport(session)

	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Summary"
	f.SetSheetName("Sheet1", summarySheet)

	summaryRows := [][]any{
		{"Quiz", report.Title},
		{"Score", fmt.Sprintf("%d / %d", report.Score, report.QuestionCount)},
		{"Percentage", fmt.Sprintf("%d%%", report.Percentage)},
		{"Performance", report.TierLabel},
		{"Time Spent", report.TimeSpentLabel},
	}
	for i, row := range summaryRows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellValue(summarySheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write summary cell: %w", err)
			}
		}
	}

	categoryOffset := len(summaryRows) + 2
	if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", categoryOffset), "Category"); err != nil {
		return nil, fmt.Errorf("failed to write category header: %w", err)
	}
	if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", categoryOffset), "Accuracy"); err != nil {
		return nil, fmt.Errorf("failed to write category header: %w", err)
	}
	for i, stat := range report.Categories {
		row := categoryOffset + 1 + i
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), stat.Category); err != nil {
			return nil, fmt.Errorf("failed to write category row: %w", err)
		}
		accuracy := fmt.Sprintf("%d/%d (%d%%)", stat.Correct, stat.Total, stat.Percentage)
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), accuracy); err != nil {
			return nil, fmt.Errorf("failed to write category row: %w", err)
		}
	}

	reviewSheet := "Review"
	if _, err := f.NewSheet(reviewSheet); err != nil {
		return nil, fmt.Errorf("failed to create review sheet: %w", err)
	}
	for j, header := range reviewHeaders {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetCellValue(reviewSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write review header: %w", err)
		}
	}
	rowIndex := 2
	for item := range ReviewList(session) {
		values := []any{
			item.Index + 1,
			item.QuestionText,
			item.Category,
			item.UserAnswer,
			item.CorrectAnswer,
			resultLabel(item.Correct),
			item.Explanation,
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, rowIndex)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellValue(reviewSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write review row: %w", err)
			}
		}
		rowIndex++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("Exported session results to Excel",
		"session_id", session.ID,
		"questions", report.QuestionCount)
	return buf.Bytes(), nil
}

// ExportResultsToCSV renders the per-question review as CSV.
func (s *ExportService) ExportResultsToCSV(session *models.QuizSession) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(reviewHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for item := range ReviewList(session) {
		record := []string{
			strconv.Itoa(item.Index + 1),
			item.QuestionText,
			item.Category,
			item.UserAnswer,
			item.CorrectAnswer,
			resultLabel(item.Correct),
			item.Explanation,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	s.logger.Info("Exported session results to CSV", "session_id", session.ID)
	return buf.Bytes(), nil
}

// ShareText builds the one-line share message for a completed session.
func (s *ExportService) ShareText(session *models.QuizSession) string {
	return fmt.Sprintf("I scored %d%% on \"%s\"!", Percentage(session), session.Title)
}

func resultLabel(correct bool) string {
	if correct {
		return "Correct"
	}
	return "Incorrect"
}
