package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/quizgen/quizgen-service/internal/history"
	"github.com/quizgen/quizgen-service/internal/services"
	"github.com/quizgen/quizgen-service/internal/utils"
	"github.com/quizgen/quizgen-service/internal/validator"
)

type HandlerManager struct {
	quizHandler    *QuizHandler
	historyHandler *HistoryHandler
}

func NewHandlerManager(
	sessions *services.SessionService,
	exports *services.ExportService,
	store *history.Store,
	v *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:    NewQuizHandler(sessions, exports, v, logger),
		historyHandler: NewHistoryHandler(store, sessions, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "quizgen-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/state", hm.quizHandler.GetState)

		// Quiz lifecycle routes
		quiz := v1.Group("/quiz")
		{
			quiz.POST("/generate", hm.quizHandler.GenerateQuiz)
			quiz.POST("/upload", hm.quizHandler.UploadSource)
			quiz.POST("/answer", hm.quizHandler.SubmitAnswer)
			quiz.POST("/next", hm.quizHandler.NextQuestion)
			quiz.POST("/retry", hm.quizHandler.RetryQuiz)
			quiz.POST("/home", hm.quizHandler.GoHome)
			quiz.POST("/history", hm.quizHandler.ShowHistory)
			quiz.POST("/dismiss-error", hm.quizHandler.DismissError)
		}

		// Results routes
		results := v1.Group("/results")
		{
			results.GET("", hm.quizHandler.GetResults)
			results.GET("/export", hm.quizHandler.ExportResults)
			results.GET("/share", hm.quizHandler.ShareResults)
		}

		// History routes
		historyRoutes := v1.Group("/history")
		{
			historyRoutes.GET("", hm.historyHandler.ListHistory)
			historyRoutes.GET("/recent", hm.historyHandler.RecentHistory)
			historyRoutes.POST("/:id/open", hm.historyHandler.OpenHistoryEntry)
		}
	}
}
