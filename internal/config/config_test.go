package config

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GROQ_API_KEY", "test-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default env 'development', got %s", cfg.AppEnv)
	}
	if cfg.AppPort != 3001 {
		t.Errorf("expected default port 3001, got %d", cfg.AppPort)
	}
	if cfg.JWTTTL != 168*time.Hour {
		t.Errorf("expected default token TTL 168h, got %v", cfg.JWTTTL)
	}
	if cfg.GroqModel != "llama-3.3-70b-versatile" {
		t.Errorf("unexpected default model: %s", cfg.GroqModel)
	}
	if !cfg.RateLimitEnabled {
		t.Error("expected rate limiting enabled by default")
	}
	if cfg.MaxRequestBodySize != 1<<20 {
		t.Errorf("expected default body cap of 1MB, got %d", cfg.MaxRequestBodySize)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	// t.Setenv registers the restore; the variables must be truly unset
	// since required only checks presence.
	t.Setenv("JWT_SECRET", "")
	t.Setenv("GROQ_API_KEY", "")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("GROQ_API_KEY")

	if _, err := Load(); err == nil {
		t.Error("expected error when required variables are missing")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_TTL", "24h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("expected production mode")
	}
	if cfg.AppPort != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.AppPort)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("expected token TTL 24h, got %v", cfg.JWTTTL)
	}
}

func TestGetCORSAllowedOrigins(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"empty", "", 0},
		{"single", "https://june.app", 1},
		{"multiple with spaces", "https://june.app, http://localhost:5173", 2},
		{"trailing comma", "https://june.app,", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{CORSAllowedOrigins: tt.value}
			if got := cfg.GetCORSAllowedOrigins(); len(got) != tt.want {
				t.Errorf("expected %d origins, got %d (%v)", tt.want, len(got), got)
			}
		})
	}
}
