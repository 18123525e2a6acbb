package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quizgen/quizgen-service/internal/history"
	"github.com/quizgen/quizgen-service/internal/models"
	"github.com/quizgen/quizgen-service/internal/services"
	"github.com/quizgen/quizgen-service/internal/utils"
)

const defaultRecentLimit = 3

// HistoryHandler serves the completed-session history.
type HistoryHandler struct {
	BaseHandler
	store    *history.Store
	sessions *services.SessionService
}

func NewHistoryHandler(store *history.Store, sessions *services.SessionService, logger utils.Logger) *HistoryHandler {
	return &HistoryHandler{
		BaseHandler: NewBaseHandler(logger),
		store:       store,
		sessions:    sessions,
	}
}

// ListHistory returns summaries of all completed sessions, most-recent-first
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "History retrieved",
		Data:    summarize(h.store.List()),
	})
}

// RecentHistory returns summaries of the most recent completed sessions
func (h *HistoryHandler) RecentHistory(c *gin.Context) {
	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid limit",
				Details: "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	sessions := h.store.List()
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Recent history retrieved",
		Data:    summarize(sessions),
	})
}

// OpenHistoryEntry re-opens a past session on the results view
func (h *HistoryHandler) OpenHistoryEntry(c *gin.Context) {
	id := sessionIDParam(c)
	if id == "" {
		return
	}

	session, err := h.sessions.OpenHistoryEntry(id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "History entry opened",
		Data:    services.BuildResultsReport(session),
	})
}

// sessionIDParam extracts the session id path parameter, writing a 400 and
// returning "" when it is blank.
func sessionIDParam(c *gin.Context) string {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid session id",
			Details: "session id cannot be empty",
		})
		return ""
	}
	return id
}

func summarize(sessions []*models.QuizSession) []models.SessionSummary {
	summaries := make([]models.SessionSummary, len(sessions))
	for i, s := range sessions {
		summaries[i] = services.Summarize(s)
	}
	return summaries
}
