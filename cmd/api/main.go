package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"penscribe/sign-portal/sign-portal-backend/internal/audit"
	"penscribe/sign-portal/sign-portal-backend/internal/auth"
	"penscribe/sign-portal/sign-portal-backend/internal/config"
	"penscribe/sign-portal/sign-portal-backend/internal/documents"
	"penscribe/sign-portal/sign-portal-backend/internal/publiclink"
	"penscribe/sign-portal/sign-portal-backend/internal/signatures"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	if os.Getenv("GIN_MODE") != "release" {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	storage, err := documents.NewLocalStorage(cfg.Storage.UploadsDir)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}

	auditService := audit.NewService(audit.NewRepository(db), logger)
	auditHandler := audit.NewHandler(auditService, logger)

	authService := auth.NewService(auth.NewRepository(db), cfg.Security.JWTSecret, cfg.Security.SessionTTL, logger)
	authHandler := auth.NewHandler(authService, logger)

	docService := documents.NewService(documents.NewRepository(db), storage, logger)
	docHandler := documents.NewHandler(docService, auditService, logger)

	sigService := signatures.NewService(signatures.NewRepository(db), docService, storage, logger)
	sigHandler := signatures.NewHandler(sigService, auditService, logger)

	linkIssuer := publiclink.NewIssuer(cfg.Security.JWTSecret, cfg.Security.PublicLinkTTL)
	linkHandler := publiclink.NewHandler(linkIssuer, docService, sigService, auditService, cfg.Server.PublicURL, logger)

	router := gin.Default()

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Finalized artifacts and originals are served straight from the
	// uploads dir, so signed_path responses are working download URLs.
	router.Static("/uploads", storage.Dir())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	authHandler.RegisterRoutes(router)
	linkHandler.RegisterPublicRoutes(router)

	api := router.Group("/api", auth.Middleware(authService))
	{
		docHandler.RegisterRoutes(api)
		sigHandler.RegisterRoutes(api)
		auditHandler.RegisterRoutes(api)
		linkHandler.RegisterOwnerRoutes(api)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.Int("port", cfg.Server.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
