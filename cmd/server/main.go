package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/formaplace/formaplace-backend/internal/config"
	"github.com/formaplace/formaplace-backend/internal/database"
	"github.com/formaplace/formaplace-backend/internal/handler"
	"github.com/formaplace/formaplace-backend/internal/logger"
	"github.com/formaplace/formaplace-backend/internal/repository"
	"github.com/formaplace/formaplace-backend/internal/router"
	"github.com/formaplace/formaplace-backend/internal/service"
	"github.com/formaplace/formaplace-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Formaplace Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	learnerRepo := repository.NewLearnerRepository(pool)
	trainerRepo := repository.NewTrainerRepository(pool)
	expertRepo := repository.NewExpertRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	formationRepo := repository.NewFormationRepository(pool)
	chapterRepo := repository.NewChapterRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	demandeRepo := repository.NewDemandeRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	var mailer service.Mailer
	if cfg.MailEnabled {
		mailer = service.NewSMTPMailer(cfg, log)
	} else {
		mailer = service.NewLogMailer(log)
	}

	authService := service.NewAuthService(cfg)
	learnerService := service.NewLearnerService(learnerRepo, authService)
	trainerService := service.NewTrainerService(trainerRepo, mailer)
	expertService := service.NewExpertService(expertRepo, authService, mailer)
	adminService := service.NewAdminService(adminRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	formationService := service.NewFormationService(formationRepo, chapterRepo, rdb, log)
	cartService := service.NewCartService(cartRepo, formationRepo, mailer)
	quizService := service.NewQuizService(questionRepo)
	demandeService := service.NewDemandeService(demandeRepo, trainerRepo, authService, mailer)

	mediaService, err := service.NewMediaService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService, learnerService, trainerService, expertService, adminService),
		Catalog:   handler.NewCatalogHandler(categoryService, formationService),
		Cart:      handler.NewCartHandler(cartService, learnerService, log),
		Formation: handler.NewFormationHandler(formationService),
		Review:    handler.NewReviewHandler(formationService),
		Admin:     handler.NewAdminHandler(trainerService, expertService, formationService, log),
		Category:  handler.NewCategoryHandler(categoryService),
		Question:  handler.NewQuestionHandler(quizService),
		Demande:   handler.NewDemandeHandler(demandeService, log),
		Media:     handler.NewMediaHandler(mediaService),
	}

	// ─── Prewarm Redis Cache ──────────────────────────────────────────
	// Load the published catalog into Redis BEFORE accepting traffic so
	// the first burst of catalog reads never stampedes Postgres.
	if err := formationService.PrewarmCatalog(ctx); err != nil {
		log.Warn().Err(err).Msg("Catalog prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	services := &router.Services{
		Auth:    authService,
		Learner: learnerService,
		Trainer: trainerService,
		Expert:  expertService,
		Admin:   adminService,
	}
	r := router.SetupRouter(services, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
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
