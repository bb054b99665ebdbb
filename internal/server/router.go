package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"explore-islands/internal/county"
	"explore-islands/internal/geo"
	"explore-islands/internal/handler"
	"explore-islands/internal/middleware"
	"explore-islands/web"
)

// Options holds everything the router needs
type Options struct {
	Logger           *zap.Logger
	Metrics          *middleware.Metrics
	CountyService    *county.Service
	Locator          *geo.Locator
	StaticDir        string
	CORSAllowOrigins []string
	// TrustedProxies lists the proxy IPs or CIDRs whose forwarding headers are
	// believed. Empty means the client IP is always the peer address.
	TrustedProxies []string
}

// NewRouter builds the gin engine with every route registered
func NewRouter(opts Options) (*gin.Engine, error) {
	if opts.CountyService == nil {
		return nil, errors.New("county service is required")
	}
	if opts.Locator == nil {
		return nil, errors.New("locator is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = middleware.NewMetrics()
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.SetHTMLTemplate(tmpl)
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(opts.Logger),
		opts.Metrics.Middleware(),
	)

	if len(opts.CORSAllowOrigins) > 0 {
		corsCfg := corsConfig(opts.CORSAllowOrigins)
		// cors.New panics on a bad config, report it as an error instead
		if err := corsCfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid CORS origins: %w", err)
		}
		router.Use(cors.New(corsCfg))
	}

	// Initialize handlers
	countyHandler := handler.NewCountyHandler(opts.CountyService)
	geoHandler := handler.NewGeoHandler(opts.Locator)
	pageHandler := handler.NewPageHandler(opts.CountyService)
	healthHandler := handler.NewHealthHandler(opts.CountyService)

	// Pages
	router.GET("/", pageHandler.Home)
	router.GET("/county/:slug", pageHandler.County)

	if opts.StaticDir != "" {
		if info, err := os.Stat(opts.StaticDir); err == nil && info.IsDir() {
			router.Static("/static", opts.StaticDir)
		} else {
			opts.Logger.Warn("static directory not found, /static disabled", zap.String("dir", opts.StaticDir))
		}
	}

	// API routes
	api := router.Group("/api")
	{
		counties := api.Group("/counties")
		counties.GET("/", countyHandler.List)
		counties.GET("/:slug", countyHandler.Get)

		api.GET("/geo/me", geoHandler.Me)
	}

	// Operations
	router.GET("/healthz", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Type", middleware.RequestIDHeader},
		MaxAge:        24 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
