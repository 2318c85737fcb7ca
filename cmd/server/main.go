// @title SecMat Backend API
// @version 1.0
// @description Cybersecurity maturity self-assessment API - Companies answer weighted questionnaires and receive per-domain maturity scores, trends and sector benchmarks
// @termsOfService http://swagger.io/terms/

// @contact.name SecMat Support
// @contact.email support@secmat.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your bearer token in the format: Bearer {token}

// Package main is the entry point for the SecMat Backend API server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/secmat-tools/secmat_backend/internal/auth"
	"github.com/secmat-tools/secmat_backend/internal/config"
	"github.com/secmat-tools/secmat_backend/internal/database"
	"github.com/secmat-tools/secmat_backend/internal/handlers"
	"github.com/secmat-tools/secmat_backend/internal/middleware"
	"github.com/secmat-tools/secmat_backend/internal/repository"
	"github.com/secmat-tools/secmat_backend/internal/services"

	// Swagger docs
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/secmat-tools/secmat_backend/docs"
)

// Build-time variables (set via ldflags)
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database connection
	ctx := context.Background()
	dbCfg := database.DefaultConfig()
	dbCfg.URI = cfg.DatabaseURI
	dbCfg.Database = cfg.DatabaseName

	dbClient, err := database.NewClient(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize JWT service early (before defer) to avoid exitAfterDefer issue
	jwtCfg := auth.JWTConfig{
		PrivateKeyPath:    cfg.JWTPrivateKeyPath,
		PublicKeyPath:     cfg.JWTPublicKeyPath,
		AccessTokenExpiry: cfg.AccessTokenExpiry,
		Issuer:            "secmat-backend",
	}

	jwtService, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		if closeErr := dbClient.Close(ctx); closeErr != nil {
			log.Printf("Error closing database connection: %v", closeErr)
		}
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	defer func() {
		if closeErr := dbClient.Close(ctx); closeErr != nil {
			log.Printf("Error closing database connection: %v", closeErr)
		}
	}()

	// Ensure indexes
	log.Println("Creating database indexes...")
	if indexErr := dbClient.EnsureIndexes(ctx); indexErr != nil {
		log.Printf("Warning: Failed to create indexes: %v", indexErr)
	}

	// Seed the default domain/question catalog
	if cfg.SeedCatalog {
		log.Println("Seeding assessment catalog...")
		seeder := database.NewSeeder(dbClient.Database())
		if seedErr := seeder.SeedAll(ctx); seedErr != nil {
			log.Printf("Warning: Failed to seed catalog: %v", seedErr)
		}
	}

	// Initialize repositories
	companyRepo := repository.NewCompanyRepository(dbClient)
	domainRepo := repository.NewDomainRepository(dbClient)
	questionRepo := repository.NewQuestionRepository(dbClient)
	assessmentRepo := repository.NewAssessmentRepository(dbClient)
	responseRepo := repository.NewResponseRepository(dbClient)

	// Initialize services
	evaluationService := services.NewEvaluationService(
		assessmentRepo,
		companyRepo,
		domainRepo,
		questionRepo,
		responseRepo,
	)
	assessmentService := services.NewAssessmentService(
		assessmentRepo,
		questionRepo,
		responseRepo,
		evaluationService,
	)
	catalogService := services.NewCatalogService(domainRepo, questionRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(dbClient, Version)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService)
	evaluationHandler := handlers.NewEvaluationHandler(assessmentService, evaluationService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	// Create Gin router
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.SecureHeaders())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	router.Use(rateLimiter.RateLimit())

	// Register health routes (not under /api/v1)
	healthHandler.RegisterRoutes(router)

	// Register Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create API v1 group
	apiV1 := router.Group("/api/v1")

	// Create auth middleware
	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Register routes
	assessmentHandler.RegisterRoutes(apiV1, authMiddleware)
	evaluationHandler.RegisterRoutes(apiV1, authMiddleware)
	catalogHandler.RegisterRoutes(apiV1, authMiddleware)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting SecMat Backend API server v%s on port %s", Version, cfg.ServerPort)
		log.Printf("Build: %s | Commit: %s | Branch: %s", BuildTime, GitCommit, GitBranch)
		log.Printf("Environment: %s", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown complete")
}
