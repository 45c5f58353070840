package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/azeem30/aptipro-student-backend/internal/cipher"
	"github.com/azeem30/aptipro-student-backend/internal/config"
	"github.com/azeem30/aptipro-student-backend/internal/database"
	"github.com/azeem30/aptipro-student-backend/internal/handler"
	"github.com/azeem30/aptipro-student-backend/internal/logger"
	"github.com/azeem30/aptipro-student-backend/internal/middleware"
	"github.com/azeem30/aptipro-student-backend/internal/router"
	"github.com/azeem30/aptipro-student-backend/internal/service"
	"github.com/azeem30/aptipro-student-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	log.Info().
		Str("port", cfg.Port).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Aptipro student backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Initialize Cipher ─────────────────────────────────────────────
	cph, err := cipher.New(cfg.CipherKey, cfg.PreviousCipherKeys...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load cipher key")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Auth Rate Limiter ─────────────────────────────────────────────
	var authLimiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		authLimiter = middleware.NewRedisLimiter(rdb, cfg.AuthRateLimit, cfg.AuthRateWindow)
	}

	// ─── Initialize Services ──────────────────────────────────────────
	store := service.NewStore(database.NewScope(pool, log))
	accountService := service.NewAccountService(store, cph, cfg.RecentResults, log)
	quizService := service.NewQuizService(store, log)
	resultService := service.NewResultService(store)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Account: handler.NewAccountHandler(accountService, log),
		Quiz:    handler.NewQuizHandler(quizService, log),
		Result:  handler.NewResultHandler(resultService, log),
		Health:  handler.NewHealthHandler(pool),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, authLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
