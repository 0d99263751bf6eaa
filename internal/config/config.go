package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Storage
	UploadDir    string
	WatchUploads bool

	// Auth; empty leaves the API open.
	APIKey string

	// CORS
	CORSOrigin string

	// Limits
	MaxUploadBytes   int64
	MaxDocumentLines int

	// Parse cache
	CacheTTL time.Duration

	// Rolling window for /api/stats/parse
	StatsWindow time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

// Load reads configuration from the environment. Values in a .env file in
// the working directory are applied first without overriding real variables.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "3000"),

		UploadDir:    envOr("UPLOAD_DIR", "uploads"),
		WatchUploads: envBool("WATCH_UPLOADS", true),

		APIKey: os.Getenv("MDCHUNK_API_KEY"),

		CORSOrigin: envOr("CORS_ORIGIN", "*"),

		MaxUploadBytes:   envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB
		MaxDocumentLines: envInt("MAX_DOCUMENT_LINES", 200000),

		CacheTTL:    envDuration("CACHE_TTL", 10*time.Minute),
		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.MaxDocumentLines <= 0 {
		cfg.MaxDocumentLines = 200000
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %q", c.Port)
	}
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
