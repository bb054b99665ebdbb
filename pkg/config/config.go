package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Data sources the county dataset can be read from
const (
	DataSourceFile     = "file"
	DataSourcePostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Port        string
	Environment string

	DataSource  string
	DataPath    string
	DatabaseURL string
	CountyTable string

	StaticDir        string
	CORSAllowOrigins []string
	TrustedProxies   []string

	GeoDefaultCounty     string
	GeoDefaultConfidence float64

	ShutdownTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	// Load .env file if it exists
	godotenv.Load()

	environment := getEnv("ENVIRONMENT", "development")

	// Only development gets a default allow-list, other environments must set one
	defaultOrigins := ""
	if environment == "development" {
		defaultOrigins = "http://localhost:8080"
	}

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          environment,
		DataSource:           getEnv("DATA_SOURCE", DataSourceFile),
		DataPath:             getEnv("DATA_PATH", "data/counties.json"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		CountyTable:          getEnv("COUNTY_TABLE", "counties"),
		StaticDir:            getEnv("STATIC_DIR", "static"),
		CORSAllowOrigins:     splitList(getEnv("CORS_ALLOW_ORIGINS", defaultOrigins)),
		TrustedProxies:       splitList(os.Getenv("TRUSTED_PROXIES")),
		GeoDefaultCounty:     lookupEnv("GEO_DEFAULT_COUNTY", "donegal"),
		GeoDefaultConfidence: getEnvFloat("GEO_DEFAULT_CONFIDENCE", 0.2),
		ShutdownTimeout:      getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	return cfg
}

// Validate checks that the settings are consistent
func (c *Config) Validate() error {
	switch c.DataSource {
	case DataSourceFile:
		if c.DataPath == "" {
			return errors.New("DATA_PATH is required when DATA_SOURCE=file")
		}
	case DataSourcePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when DATA_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q", c.DataSource)
	}

	if c.GeoDefaultConfidence < 0 || c.GeoDefaultConfidence > 1 {
		return fmt.Errorf("GEO_DEFAULT_CONFIDENCE must be between 0 and 1, got %v", c.GeoDefaultConfidence)
	}

	if c.Environment == "production" && len(c.CORSAllowOrigins) == 0 {
		return errors.New("production environment detected, but CORS_ALLOW_ORIGINS not set")
	}

	for _, origin := range c.CORSAllowOrigins {
		if origin == "*" {
			continue
		}
		if strings.Contains(origin, "*") {
			return fmt.Errorf("CORS_ALLOW_ORIGINS: wildcard origin %q is not supported, use \"*\" alone", origin)
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ALLOW_ORIGINS: origin %q must start with http:// or https://", origin)
		}
	}

	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(proxy); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES: %q is neither an IP nor a CIDR", proxy)
		}
	}

	return nil
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// lookupEnv is like getEnv but keeps an explicitly empty value
func lookupEnv(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return strings.TrimSpace(value)
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return f
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
