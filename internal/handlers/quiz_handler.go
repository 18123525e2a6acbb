package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quizgen/quizgen-service/internal/models"
	"github.com/quizgen/quizgen-service/internal/services"
	"github.com/quizgen/quizgen-service/internal/utils"
	"github.com/quizgen/quizgen-service/internal/validator"
)

// maxUploadBytes caps uploaded source documents. The gateway truncates the
// text anyway; this just keeps absurd uploads off the wire.
const maxUploadBytes = 5 << 20

// QuizHandler exposes the application state machine over HTTP.
type QuizHandler struct {
	BaseHandler
	sessions  *services.SessionService
	exports   *services.ExportService
	validator *validator.Validator
}

func NewQuizHandler(
	sessions *services.SessionService,
	exports *services.ExportService,
	v *validator.Validator,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		sessions:    sessions,
		exports:     exports,
		validator:   v,
	}
}

// SubmitAnswerRequest carries the user's answer for the current question.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// GetState returns a snapshot of the application state
func (h *QuizHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessions.Snapshot())
}

// GenerateQuiz starts a new quiz from a pasted text or URL source
func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	h.LogRequest(c, "Generating quiz")

	var config models.QuizConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	session, err := h.sessions.Generate(c.Request.Context(), config)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Quiz generated",
		Data:    session,
	})
}

// UploadSource starts a new quiz from an uploaded document. The quiz settings
// arrive as multipart form fields alongside the file.
func (h *QuizHandler) UploadSource(c *gin.Context) {
	h.LogRequest(c, "Generating quiz from uploaded document")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing uploaded file",
			Details: err.Error(),
		})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Uploaded file too large",
			Details: fmt.Sprintf("limit is %d bytes", maxUploadBytes),
		})
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".txt" && ext != ".md" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unsupported file type",
			Details: "only .txt and .md documents are accepted",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Could not read uploaded file",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	source, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Could not read uploaded file",
			Details: err.Error(),
		})
		return
	}

	config := models.QuizConfig{
		SourceText:    string(source),
		SourceType:    models.SourceFile,
		Difficulty:    models.DifficultyLevel(c.PostForm("difficulty")),
		QuestionCount: parseFormInt(c, "question_count"),
		QuestionTypes: parseQuestionTypes(c.PostForm("question_types")),
	}

	session, err := h.sessions.Generate(c.Request.Context(), config)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Quiz generated",
		Data:    session,
	})
}

// SubmitAnswer records the answer for the current question
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	correct, err := h.sessions.SubmitAnswer(req.Answer)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Answer recorded",
		Data: gin.H{
			"correct": correct,
			"state":   h.sessions.Snapshot(),
		},
	})
}

// NextQuestion advances to the next question, or finalizes the session on the last one
func (h *QuizHandler) NextQuestion(c *gin.Context) {
	completed, err := h.sessions.NextQuestion(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	message := "Advanced to next question"
	if completed {
		message = "Quiz completed"
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: message,
		Data: gin.H{
			"completed": completed,
			"state":     h.sessions.Snapshot(),
		},
	})
}

// RetryQuiz restarts the quiz currently shown on the results view
func (h *QuizHandler) RetryQuiz(c *gin.Context) {
	h.LogRequest(c, "Retrying quiz")

	session, err := h.sessions.Retry()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Quiz restarted",
		Data:    session,
	})
}

// GoHome returns to the home view, abandoning any unfinished session
func (h *QuizHandler) GoHome(c *gin.Context) {
	h.sessions.GoHome(c.Request.Context())
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Returned home",
		Data:    h.sessions.Snapshot(),
	})
}

// ShowHistory switches from the home view to the history view
func (h *QuizHandler) ShowHistory(c *gin.Context) {
	if err := h.sessions.ShowHistory(); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "History view opened",
		Data:    h.sessions.Snapshot(),
	})
}

// DismissError clears the error banner
func (h *QuizHandler) DismissError(c *gin.Context) {
	h.sessions.DismissError()
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Error dismissed",
	})
}

// GetResults returns the analytics report for the completed session on display
func (h *QuizHandler) GetResults(c *gin.Context) {
	session, err := h.sessions.CompletedSession()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, services.BuildResultsReport(session))
}

// ExportResults streams the completed session results as xlsx or csv
func (h *QuizHandler) ExportResults(c *gin.Context) {
	session, err := h.sessions.CompletedSession()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	switch format {
	case "xlsx":
		data, err := h.exports.ExportResultsToExcel(session)
		if err != nil {
			h.LogError(c, err, "Excel export failed", "session_id", session.ID)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Message: "Export failed",
			})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="quiz-results.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "csv":
		data, err := h.exports.ExportResultsToCSV(session)
		if err != nil {
			h.LogError(c, err, "CSV export failed", "session_id", session.ID)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Message: "Export failed",
			})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="quiz-results.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unsupported export format",
			Details: "supported formats: xlsx, csv",
		})
	}
}

// ShareResults returns the share message for the completed session on display
func (h *QuizHandler) ShareResults(c *gin.Context) {
	session, err := h.sessions.CompletedSession()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text": h.exports.ShareText(session),
	})
}

func parseFormInt(c *gin.Context, field string) int {
	var value int
	_, err := fmt.Sscanf(c.PostForm(field), "%d", &value)
	if err != nil {
		return 0
	}
	return value
}

func parseQuestionTypes(raw string) []models.QuestionType {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	types := make([]models.QuestionType, 0, len(parts))
	for _, p := range parts {
		types = append(types, models.QuestionType(strings.TrimSpace(p)))
	}
	return types
}
