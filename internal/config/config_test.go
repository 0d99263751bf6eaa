package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "UPLOAD_DIR", "MDCHUNK_API_KEY", "MAX_UPLOAD_BYTES", "CACHE_TTL", "WATCH_UPLOADS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "3000" {
		t.Errorf("expected port 3000, got %q", cfg.Port)
	}
	if cfg.UploadDir != "uploads" {
		t.Errorf("expected upload dir %q, got %q", "uploads", cfg.UploadDir)
	}
	if cfg.APIKey != "" {
		t.Errorf("expected open API by default, got key %q", cfg.APIKey)
	}
	if cfg.MaxUploadBytes != 10485760 {
		t.Errorf("expected 10MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("expected 10m cache TTL, got %s", cfg.CacheTTL)
	}
	if !cfg.WatchUploads {
		t.Error("expected upload watching on by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("MAX_DOCUMENT_LINES", "50")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("WATCH_UPLOADS", "false")
	t.Setenv("MAX_UPLOAD_BYTES", "-1")

	cfg := Load()
	if cfg.Port != "8088" {
		t.Errorf("expected port 8088, got %q", cfg.Port)
	}
	if cfg.MaxDocumentLines != 50 {
		t.Errorf("expected 50 lines, got %d", cfg.MaxDocumentLines)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("expected 30s TTL, got %s", cfg.CacheTTL)
	}
	if cfg.WatchUploads {
		t.Error("expected watching disabled")
	}
	if cfg.MaxUploadBytes != 10485760 {
		t.Errorf("expected invalid limit to fall back to default, got %d", cfg.MaxUploadBytes)
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := Config{Port: "http", UploadDir: "uploads"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-numeric port")
	}
}
