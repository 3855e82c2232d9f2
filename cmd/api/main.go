package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fieldsync/fieldsync-api/internal/application/service"
	"github.com/fieldsync/fieldsync-api/internal/config"
	"github.com/fieldsync/fieldsync-api/internal/infrastructure/database"
	"github.com/fieldsync/fieldsync-api/internal/infrastructure/repository"
	"github.com/fieldsync/fieldsync-api/internal/presentation/http/handler"
	"github.com/fieldsync/fieldsync-api/internal/presentation/http/routes"
	"github.com/fieldsync/fieldsync-api/pkg/email"
	"github.com/fieldsync/fieldsync-api/pkg/printer"
	"github.com/fieldsync/fieldsync-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	technicianRepo := repository.NewTechnicianRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	quoteItemRepo := repository.NewQuoteItemRepository(db)
	jobRepo := repository.NewJobRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	jobPartRepo := repository.NewJobPartRepository(db)
	jobNoteRepo := repository.NewJobNoteRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	syncRepo := repository.NewSyncRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		PortalURL:    cfg.Email.PortalURL,
	})

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	numberingService := service.NewNumberingService(settingsRepo, quoteRepo, invoiceRepo, jobRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	customerService := service.NewCustomerService(customerRepo)
	technicianService := service.NewTechnicianService(technicianRepo)
	quoteService := service.NewQuoteService(quoteRepo, quoteItemRepo, customerRepo, settingsRepo, numberingService, emailService)
	jobService := service.NewJobService(jobRepo, checklistRepo, jobPartRepo, jobNoteRepo, customerRepo, technicianRepo, numberingService)
	conversionService := service.NewConversionService(quoteRepo, jobRepo, numberingService)
	invoiceService := service.NewInvoiceService(invoiceRepo, jobRepo, checklistRepo, jobPartRepo, customerRepo, settingsRepo, numberingService, emailService, thermalPrinter)
	settingsService := service.NewSettingsService(settingsRepo)
	syncService := service.NewSyncService(syncRepo, jobService, cfg.Sync.BatchSize, cfg.Sync.MaxAttempts, cfg.Sync.BackoffBase)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Customer:   handler.NewCustomerHandler(customerService),
		Technician: handler.NewTechnicianHandler(technicianService),
		Quote:      handler.NewQuoteHandler(quoteService, conversionService),
		Job:        handler.NewJobHandler(jobService),
		Invoice:    handler.NewInvoiceHandler(invoiceService),
		Settings:   handler.NewSettingsHandler(settingsService),
		Sync:       handler.NewSyncHandler(syncService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Background workers: drain the offline queue, expire stale quotes and
	// flag overdue invoices.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	go drainLoop(workerCtx, syncService, cfg.Sync.DrainInterval)
	go maintenanceLoop(workerCtx, quoteService, invoiceService)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// drainLoop replays queued offline actions on a fixed interval.
func drainLoop(ctx context.Context, syncService *service.SyncService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			applied, err := syncService.Drain(ctx)
			if err != nil {
				log.Printf("Sync drain failed: %v", err)
				continue
			}
			if applied > 0 {
				log.Printf("Sync drain applied %d action(s)", applied)
			}
		}
	}
}

// maintenanceLoop expires stale quotes and marks overdue invoices once an
// hour. Both sweeps are idempotent, so missing a tick is harmless.
func maintenanceLoop(ctx context.Context, quoteService *service.QuoteService, invoiceService *service.InvoiceService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := quoteService.ExpireStaleQuotes(ctx); err != nil {
				log.Printf("Quote expiry sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("Expired %d stale quote(s)", n)
			}

			if n, err := invoiceService.MarkOverdueInvoices(ctx); err != nil {
				log.Printf("Overdue invoice sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("Marked %d invoice(s) overdue", n)
			}
		}
	}
}
