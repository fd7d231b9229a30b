package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/david210690/futura-hire-ai-sub000/internal/config"
	"github.com/david210690/futura-hire-ai-sub000/internal/handlers"
	"github.com/david210690/futura-hire-ai-sub000/internal/repositories"
	"github.com/david210690/futura-hire-ai-sub000/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	appRepo := repositories.NewApplicationRepository(db)
	hireRepo := repositories.NewHireRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize pipeline + insights services
	pipelineService := services.NewPipelineService(appRepo, hireRepo, cfg.Pipeline.UndoWindow)

	resumeIndexer := services.NewResumeIndexer(geminiService, qdrantService, chunker)

	insightsService := services.NewInsightsService(
		reportRepo,
		appRepo,
		hireRepo,
		geminiService,
		cfg.Worker.RetryMaxAttempts,
	)
	log.Println("✅ Pipeline and insights services initialized")

	// Initialize worker
	worker := services.NewWorker(
		reportRepo,
		insightsService,
		cfg.Worker.Concurrency,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Optional Redis rate limiter
	var limiter services.RateLimiter
	if cfg.Redis.Addr != "" {
		limiter = services.NewRedisRateLimiter(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Println("✅ Redis rate limiter enabled")
	}

	// Initialize Handlers
	pipelineHandler := handlers.NewPipelineHandler(pipelineService)
	reportHandler := handlers.NewReportHandler(reportRepo, worker)
	resumeHandler := handlers.NewResumeHandler(
		resumeRepo,
		storageService,
		pdfParser,
		resumeIndexer,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "FuturaHire Pipeline API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Actor-ID, X-Org-ID",
	}))

	app.Use(handlers.ActorContext())
	mutationLimit := handlers.RateLimit(limiter, cfg.Redis.RateLimit, cfg.Redis.RateEvery)

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Pipeline endpoints
	api.Post("/applications", mutationLimit, pipelineHandler.HandleCreate)
	api.Post("/applications/bulk-stage", mutationLimit, pipelineHandler.HandleBulkMoveStage)
	api.Get("/applications/:id", pipelineHandler.HandleGet)
	api.Get("/applications/:id/history", pipelineHandler.HandleHistory)
	api.Post("/applications/:id/stage", mutationLimit, pipelineHandler.HandleMoveStage)
	api.Post("/applications/:id/confirm-hire", mutationLimit, pipelineHandler.HandleConfirmHire)
	api.Post("/applications/:id/undo-hire", mutationLimit, pipelineHandler.HandleUndoHire)
	api.Get("/jobs/:id/applications", pipelineHandler.HandleListByJob)
	api.Get("/hires", pipelineHandler.HandleListHires)
	api.Get("/hires/count", pipelineHandler.HandleHireCount)

	// Report endpoints
	api.Post("/reports", mutationLimit, reportHandler.HandleCreateReport)
	api.Get("/reports/:id", reportHandler.HandleGetReport)

	// Resume endpoints
	api.Post("/resumes", mutationLimit, resumeHandler.HandleUpload)
	api.Get("/resumes/search", resumeHandler.HandleSearch)
	api.Get("/resumes/:id", resumeHandler.HandleGet)
	api.Get("/candidates/:id/resumes", resumeHandler.HandleListByCandidate)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "FuturaHire Pipeline API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/applications",
				"POST /api/v1/applications/:id/stage",
				"POST /api/v1/applications/:id/confirm-hire",
				"POST /api/v1/applications/:id/undo-hire",
				"POST /api/v1/applications/bulk-stage",
				"GET /api/v1/hires/count",
				"POST /api/v1/reports",
				"POST /api/v1/resumes",
				"GET /api/v1/resumes/search",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
