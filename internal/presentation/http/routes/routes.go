package routes

import (
	"time"

	"github.com/fieldsync/fieldsync-api/internal/config"
	"github.com/fieldsync/fieldsync-api/internal/domain/entity"
	domainRepo "github.com/fieldsync/fieldsync-api/internal/domain/repository"
	"github.com/fieldsync/fieldsync-api/internal/presentation/http/handler"
	"github.com/fieldsync/fieldsync-api/internal/presentation/http/middleware"
	"github.com/fieldsync/fieldsync-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Customer   *handler.CustomerHandler
	Technician *handler.TechnicianHandler
	Quote      *handler.QuoteHandler
	Job        *handler.JobHandler
	Invoice    *handler.InvoiceHandler
	Settings   *handler.SettingsHandler
	Sync       *handler.SyncHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	office := middleware.RequireRole(entity.RoleAdmin, entity.RoleDispatcher)
	idempotent := middleware.Idempotency(deps.IdempotencyRepo)

	protected.GET("/profile", h.Auth.Me)

	// Settings
	protected.GET("/settings", h.Settings.Get)
	protected.PUT("/settings", office, h.Settings.Update)

	// Customers
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", office, h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", office, h.Customer.Update)
		customers.DELETE("/:id", office, h.Customer.Delete)
	}

	// Technicians
	technicians := protected.Group("/technicians")
	{
		technicians.GET("", h.Technician.List)
		technicians.POST("", office, h.Technician.Create)
		technicians.GET("/:id", h.Technician.Get)
		technicians.PUT("/:id", office, h.Technician.Update)
		technicians.DELETE("/:id", office, h.Technician.Delete)
	}

	// Quotes
	quotes := protected.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", office, h.Quote.Create)
		quotes.GET("/:id", h.Quote.Get)
		quotes.PUT("/:id", office, h.Quote.Update)
		quotes.DELETE("/:id", office, h.Quote.Delete)
		quotes.POST("/:id/send", office, h.Quote.Send)
		quotes.POST("/:id/view", h.Quote.MarkViewed)
		quotes.POST("/:id/approve", office, h.Quote.Approve)
		quotes.POST("/:id/decline", office, h.Quote.Decline)
		quotes.POST("/:id/convert", office, idempotent, h.Quote.Convert)
	}

	// Jobs
	jobs := protected.Group("/jobs")
	{
		jobs.GET("", h.Job.List)
		jobs.POST("", office, h.Job.Create)
		jobs.GET("/:id", h.Job.Get)
		jobs.PUT("/:id", office, h.Job.Update)
		jobs.POST("/:id/start", h.Job.Start)
		jobs.POST("/:id/complete", h.Job.Complete)
		jobs.POST("/:id/cancel", office, h.Job.Cancel)
		jobs.PATCH("/:id/checklist/:itemId", h.Job.ToggleChecklistItem)
		jobs.POST("/:id/parts", h.Job.AddPart)
		jobs.DELETE("/:id/parts/:partId", h.Job.RemovePart)
		jobs.POST("/:id/notes", h.Job.AddNote)
	}

	// Invoices
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", office, idempotent, h.Invoice.Generate)
		invoices.GET("/export", office, h.Invoice.Export)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/pay", office, h.Invoice.MarkPaid)
		invoices.POST("/:id/void", office, h.Invoice.Void)
		invoices.POST("/:id/print", h.Invoice.Print)
	}

	// Offline sync queue
	sync := protected.Group("/sync")
	{
		sync.POST("/actions", h.Sync.Enqueue)
		sync.GET("/actions/pending", h.Sync.ListPending)
		sync.GET("/actions/failed", office, h.Sync.ListFailed)
		sync.POST("/drain", office, h.Sync.Drain)
	}
}
