package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"explore-islands/internal/county"
	"explore-islands/internal/geo"
	"explore-islands/internal/logging"
	"explore-islands/internal/middleware"
	"explore-islands/internal/server"
	"explore-islands/pkg/config"
	"explore-islands/pkg/model"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg := config.LoadConfig()

	logger, err := logging.NewLogger(cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// The dataset is loaded once, before any request is served
	counties, err := loadCounties(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to load counties",
			zap.Error(err),
			zap.String("source", cfg.DataSource),
			zap.String("path", cfg.DataPath))
	}

	countyService, err := county.NewService(counties)
	if err != nil {
		logger.Fatal("failed to index counties", zap.Error(err))
	}
	logger.Info("counties loaded", zap.Int("count", countyService.Len()), zap.String("source", cfg.DataSource))

	if slug := cfg.GeoDefaultCounty; slug != "" {
		if _, err := countyService.Get(slug); err != nil {
			logger.Warn("default location guess is not a known county", zap.String("slug", slug))
		}
	}

	metrics := middleware.NewMetrics()
	metrics.SetCountiesLoaded(countyService.Len())

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := server.NewRouter(server.Options{
		Logger:           logger,
		Metrics:          metrics,
		CountyService:    countyService,
		Locator:          geo.NewLocator(cfg.GeoDefaultCounty, cfg.GeoDefaultConfidence),
		StaticDir:        cfg.StaticDir,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		TrustedProxies:   cfg.TrustedProxies,
	})
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

func loadCounties(ctx context.Context, cfg *config.Config) ([]model.County, error) {
	if cfg.DataSource != config.DataSourcePostgres {
		return county.LoadFile(cfg.DataPath)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Connect to database
	db, err := sqlx.ConnectContext(connectCtx, "postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return county.LoadPostgres(connectCtx, db, cfg.CountyTable)
}
