package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/light-87/Lead-V/config"
	"github.com/light-87/Lead-V/handler"
	"github.com/light-87/Lead-V/middleware"
	"github.com/light-87/Lead-V/pkg/logger"
	"github.com/light-87/Lead-V/service"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully", "llm_provider", cfg.LLM.Provider)

	ctx := context.Background()

	store, err := newBlobStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize blob store", "error", err)
		os.Exit(1)
	}

	llm, err := service.NewCompleter(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize llm client", "provider", cfg.LLM.Provider, "error", err)
		os.Exit(1)
	}

	// Initialize services
	pipeline := service.NewPipeline(
		service.NewSearchService(llm),
		service.NewDomainProber(&cfg.Prober),
		service.NewVerifyService(llm),
	)
	repo := service.NewRepository(store, cfg.Smartlead.CampaignID)
	emailSvc := service.NewEmailService(llm, cfg.Email.Signature)
	smartleadSvc := service.NewSmartleadService(&cfg.Smartlead)
	if !smartleadSvc.Configured() {
		slog.Warn("smartlead api key not set, campaign actions are disabled")
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	searchHandler := handler.NewSearchHandler(pipeline)
	emailHandler := handler.NewEmailHandler(emailSvc, repo)
	smartleadHandler := handler.NewSmartleadHandler(smartleadSvc, repo, cfg.Smartlead.CampaignID)
	storeHandler := handler.NewStoreHandler(repo)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(corsMiddleware())
	router.Use(noStoreMiddleware())
	router.Use(middleware.RateLimit(cfg.Server.RateLimitPerMinute, time.Minute))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.POST("/search", searchHandler.Search)
		protected.POST("/generate-email", emailHandler.Generate)
		protected.POST("/smartlead", smartleadHandler.Handle)

		protected.GET("/data", storeHandler.ListSearches)
		protected.POST("/data", storeHandler.SaveSearch)
		protected.GET("/leads", storeHandler.ListLeads)
		protected.POST("/leads", storeHandler.SaveLead)
		protected.DELETE("/leads/:id", storeHandler.DeleteLead)
		protected.GET("/settings", storeHandler.GetSettings)
		protected.POST("/settings", storeHandler.SaveSettings)
		protected.GET("/business-edit", storeHandler.GetEdit)
		protected.POST("/business-edit", storeHandler.SaveEdit)
	}

	// WriteTimeout covers whole search streams.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// newBlobStore returns the MinIO store when an endpoint is configured, the
// in-memory store otherwise.
func newBlobStore(ctx context.Context, cfg *config.Config) (service.BlobStore, error) {
	if cfg.Minio.Endpoint == "" {
		slog.Warn("no minio endpoint configured, documents are kept in memory")
		return service.NewMemoryStore(cfg.Minio.MaxDocuments, service.SearchesPrefix), nil
	}

	store, err := service.NewMinioStore(&cfg.Minio)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket: %w", err)
	}
	return store, nil
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Cache-Control, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// noStoreMiddleware keeps API responses out of caches. The search stream
// replaces Cache-Control with its own value.
func noStoreMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
