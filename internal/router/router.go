package router

import (
	"net/http"
	"time"

	"github.com/azeem30/aptipro-student-backend/internal/config"
	"github.com/azeem30/aptipro-student-backend/internal/handler"
	"github.com/azeem30/aptipro-student-backend/internal/middleware"
	"github.com/azeem30/aptipro-student-backend/internal/response"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Account *handler.AccountHandler
	Quiz    *handler.QuizHandler
	Result  *handler.ResultHandler
	Health  *handler.HealthHandler
}

// SetupRouter configures the Gin engine. authLimiter guards the signup,
// verify and login routes.
func SetupRouter(
	handlers *Handlers,
	authLimiter middleware.Limiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.AccessLog(log))
	router.Use(middleware.Brotli())

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound, "")
	})

	router.GET("/health", handlers.Health.Health)

	// ─── Accounts (rate limited) ───────────────────────────────────────
	limited := router.Group("/")
	limited.Use(middleware.RateLimit(authLimiter, log))
	{
		limited.POST("/signup", handlers.Account.Signup)
		limited.POST("/verify", handlers.Account.Verify)
		limited.POST("/login", handlers.Account.Login)
	}
	router.POST("/update_profile", handlers.Account.UpdateProfile)

	// ─── Quizzes ───────────────────────────────────────────────────────
	router.GET("/tests", handlers.Quiz.ListTests)
	router.GET("/questions", handlers.Quiz.ListQuestions)
	router.POST("/submit", handlers.Quiz.Submit)
	router.GET("/results", handlers.Result.ListResults)

	return router
}
