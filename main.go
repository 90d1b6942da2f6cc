package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/config"
	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/handler"
	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/middleware"
	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/pkg/logger"
	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/service"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Initialize document storage
	documents, err := newDocumentStore(cfg)
	if err != nil {
		slog.Error("failed to initialize document storage", "error", err)
		os.Exit(1)
	}

	// Initialize claim store and workflow
	store := service.NewMemoryClaimStore()
	claims := service.NewClaimService(store, documents, cfg.Storage.MaxUploadBytes, cfg.Storage.AllowedExtensions)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	claimHandler := handler.NewClaimHandler(claims)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())            // Request ID for tracing
	router.Use(middleware.Recovery())             // Panic recovery
	router.Use(middleware.RequestLogger())        // Access logging
	router.Use(corsMiddleware())                  // CORS
	router.Use(middleware.RateLimit(&cfg.Server)) // Rate limiting, per client IP

	// Determine static files directory
	staticDir := "./"
	if _, err := os.Stat("./index.html"); os.IsNotExist(err) {
		staticDir = "../"
	}
	slog.Info("serving static files", "directory", staticDir)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Page routes
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/Home/Index")
	})
	router.GET("/Home/Index", pageHandler(staticDir, "index.html", "Claim Management"))
	router.GET("/Home/LecturerClaim", pageHandler(staticDir, "lecturer_claim.html", "Submit Claim"))

	// Claim workflow routes
	home := router.Group("/Home")
	{
		home.POST("/LecturerClaim", claimHandler.Submit)
		home.GET("/CoordinatorApproval", claimHandler.PendingList)
		home.POST("/Approve", claimHandler.Approve)
		home.POST("/Reject", claimHandler.Reject)
		home.POST("/ApproveAjax", claimHandler.ApproveAjax)
		home.POST("/RejectAjax", claimHandler.RejectAjax)
		home.GET("/ClaimStatus", claimHandler.StatusList)
	}

	// Auth routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// newDocumentStore selects the supporting-document backend from config
func newDocumentStore(cfg *config.Config) (service.DocumentStore, error) {
	switch cfg.Storage.Backend {
	case "minio":
		store, err := service.NewMinioDocumentStore(&cfg.Minio)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(context.Background()); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return service.NewLocalDocumentStore(cfg.Storage.UploadDir)
	}
}

// pageHandler serves a static page when present, or a minimal placeholder so
// the route always answers
func pageHandler(staticDir, fileName, title string) gin.HandlerFunc {
	path := filepath.Join(staticDir, fileName)
	return func(c *gin.Context) {
		if _, err := os.Stat(path); err == nil {
			c.File(path)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8",
			[]byte("<!DOCTYPE html><html><head><title>"+title+"</title></head><body><h1>"+title+"</h1></body></html>"))
	}
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
