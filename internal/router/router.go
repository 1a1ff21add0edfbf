package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/formaplace/formaplace-backend/internal/config"
	"github.com/formaplace/formaplace-backend/internal/handler"
	"github.com/formaplace/formaplace-backend/internal/middleware"
	"github.com/formaplace/formaplace-backend/internal/response"
	"github.com/formaplace/formaplace-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Catalog   *handler.CatalogHandler
	Cart      *handler.CartHandler
	Formation *handler.FormationHandler
	Review    *handler.ReviewHandler
	Admin     *handler.AdminHandler
	Category  *handler.CategoryHandler
	Question  *handler.QuestionHandler
	Demande   *handler.DemandeHandler
	Media     *handler.MediaHandler
}

// Services carries the services the router needs for auth gates.
type Services struct {
	Auth    *service.AuthService
	Learner *service.LearnerService
	Trainer *service.TrainerService
	Expert  *service.ExpertService
	Admin   *service.AdminService
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(services *Services, handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Every gate re-checks actor existence, so a deleted account dies on
	// its next request even with a token still in hand.
	requireLearner := middleware.RequireRole(services.Auth, existsResolver(services.Learner.GetByID), service.RoleLearner)
	requireTrainer := middleware.RequireRole(services.Auth, existsResolver(services.Trainer.GetByID), service.RoleTrainer)
	requireExpert := middleware.RequireRole(services.Auth, existsResolver(services.Expert.GetByID), service.RoleExpert)
	requireAdmin := middleware.RequireRole(services.Auth, existsResolver(services.Admin.GetByID), service.RoleAdmin)

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		publicAPI.GET("/categories", handlers.Catalog.ListCategories)
		publicAPI.GET("/formations", handlers.Catalog.ListFormations)
		publicAPI.GET("/formations/:id", handlers.Catalog.GetFormation)
		publicAPI.GET("/questions/:category", handlers.Question.ListByCategory)
		publicAPI.POST("/demandes", handlers.Demande.Submit)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/learner/register", handlers.Auth.RegisterLearner)
		auth.POST("/learner/login", handlers.Auth.LearnerLogin)
		auth.POST("/trainer/login", handlers.Auth.TrainerLogin)
		auth.POST("/expert/login", handlers.Auth.ExpertLogin)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.GET("/learner/me", requireLearner, handlers.Auth.GetLearnerProfile)
		auth.GET("/trainer/me", requireTrainer, handlers.Auth.GetTrainerProfile)
		auth.GET("/expert/me", requireExpert, handlers.Auth.GetExpertProfile)
		auth.GET("/admin/me", requireAdmin, handlers.Auth.GetAdminProfile)
	}

	// ─── 2. Learner Group ──────────────────────────────────────────────
	learnerAPI := router.Group("/api/v1/learner")
	learnerAPI.Use(requireLearner)
	{
		learnerAPI.GET("/cart", handlers.Cart.GetCart)
		learnerAPI.POST("/cart/items", handlers.Cart.AddItem)
		learnerAPI.DELETE("/cart/items/:formationId", handlers.Cart.RemoveItem)
		learnerAPI.POST("/cart/checkout", handlers.Cart.Checkout)
	}

	// ─── 3. Trainer Group ──────────────────────────────────────────────
	trainerAPI := router.Group("/api/v1/trainer")
	trainerAPI.Use(requireTrainer)
	{
		trainerAPI.PUT("/profile", handlers.Auth.UpdateTrainerProfile)
		trainerAPI.POST("/media/upload", handlers.Media.Upload)

		trainerAPI.GET("/formations", handlers.Formation.List)
		trainerAPI.POST("/formations", handlers.Formation.Create)
		trainerAPI.GET("/formations/:id", handlers.Formation.Get)
		trainerAPI.PUT("/formations/:id", handlers.Formation.Update)
		trainerAPI.DELETE("/formations/:id", handlers.Formation.Delete)

		trainerAPI.POST("/formations/:id/chapters", handlers.Formation.AddChapter)
		trainerAPI.PUT("/chapters/:id", handlers.Formation.UpdateChapter)
		trainerAPI.DELETE("/chapters/:id", handlers.Formation.DeleteChapter)
		trainerAPI.POST("/chapters/:id/parts", handlers.Formation.AddPart)
		trainerAPI.DELETE("/parts/:id", handlers.Formation.DeletePart)
		trainerAPI.POST("/parts/:id/resources", handlers.Formation.AddResource)
		trainerAPI.DELETE("/resources/:id", handlers.Formation.DeleteResource)
	}

	// ─── 4. Expert Group ───────────────────────────────────────────────
	expertAPI := router.Group("/api/v1/expert")
	expertAPI.Use(requireExpert)
	{
		expertAPI.GET("/formations/pending", handlers.Review.ListPending)
		expertAPI.GET("/formations/:id", handlers.Review.GetFormation)
		expertAPI.POST("/formations/:id/approve", handlers.Review.Approve)
		expertAPI.POST("/chapters/:id/review", handlers.Review.ReviewChapter)
	}

	// ─── 5. Admin Group ────────────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(requireAdmin)
	{
		adminAPI.POST("/media/upload", handlers.Media.Upload)

		// Category management
		adminAPI.GET("/categories", handlers.Category.List)
		adminAPI.POST("/categories", handlers.Category.Create)
		adminAPI.PUT("/categories/:id", handlers.Category.Update)
		adminAPI.DELETE("/categories/:id", handlers.Category.Delete)

		// Trainer lifecycle
		adminAPI.GET("/trainers", handlers.Admin.ListTrainers)
		adminAPI.POST("/trainers/:id/activate", handlers.Admin.ActivateTrainer)

		// Expert accounts
		adminAPI.POST("/experts", handlers.Admin.CreateExpert)

		// Trainer onboarding requests
		adminAPI.GET("/demandes", handlers.Demande.List)
		adminAPI.POST("/demandes/:id/accept", handlers.Demande.Accept)
		adminAPI.POST("/demandes/:id/refuse", handlers.Demande.Refuse)

		// Formation moderation
		adminAPI.GET("/formations", handlers.Admin.ListFormations)
		adminAPI.POST("/formations/:id/approve", handlers.Admin.ApproveFormation)

		// Quiz questions
		adminAPI.POST("/questions", handlers.Question.Add)
		adminAPI.GET("/questions/:category", handlers.Question.ListByCategory)
	}

	return router
}

// existsResolver adapts a typed GetByID into the gate's existence check.
func existsResolver[T any](get func(ctx context.Context, id int) (*T, error)) middleware.ActorResolver {
	return func(ctx context.Context, id int) error {
		_, err := get(ctx, id)
		return err
	}
}
