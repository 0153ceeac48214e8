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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sidhant-sriv/expiry-tracker/auth"
	"github.com/sidhant-sriv/expiry-tracker/config"
	"github.com/sidhant-sriv/expiry-tracker/db"
	"github.com/sidhant-sriv/expiry-tracker/logger"
	"github.com/sidhant-sriv/expiry-tracker/metrics"
	"github.com/sidhant-sriv/expiry-tracker/middleware"
	"github.com/sidhant-sriv/expiry-tracker/routes"
)

func main() {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLogger, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		appLogger.Fatal("invalid timezone", zap.Error(err))
	}

	users, err := auth.NewStore(cfg.Users)
	if err != nil {
		appLogger.Fatal("invalid credential table", zap.Error(err))
	}

	// Initialize database
	DB, err := db.Open(cfg.Database)
	if err != nil {
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	if err := db.MakeMigration(DB); err != nil {
		appLogger.Fatal("could not migrate database", zap.Error(err))
	}
	products := db.NewProductStore(DB)
	defer func() { _ = products.Close() }()
	appLogger.Info("database ready", zap.String("driver", cfg.Database.Driver))

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(appLogger, m),
	)
	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	routes.Setup(router, &routes.Handler{
		Products: products,
		Users:    users,
		Tokens:   auth.NewTokenIssuer(cfg.JWT.SecretKey, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL),
		Sections: cfg.Sections,
		Location: loc,
		Log:      appLogger,
		Metrics:  m,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("server running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
