package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "STORE_DRIVER", "JWT_SECRET", "JWT_EXPIRY", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.StoreDriver != "mysql" {
		t.Errorf("StoreDriver = %q, want mysql", cfg.StoreDriver)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://jobs.example.com,")

	cfg := Load()

	if cfg.StoreDriver != "mongo" {
		t.Errorf("StoreDriver = %q, want mongo", cfg.StoreDriver)
	}
	if cfg.JWTExpiry != 2*time.Hour {
		t.Errorf("JWTExpiry = %v, want 2h", cfg.JWTExpiry)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://jobs.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "one day")

	if got := Load().JWTExpiry; got != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want 24h", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "dev secret in development", cfg: Config{Env: "development", JWTSecret: devJWTSecret, JWTExpiry: time.Hour}},
		{name: "dev secret in production", cfg: Config{Env: "production", JWTSecret: devJWTSecret, JWTExpiry: time.Hour}, wantErr: true},
		{name: "real secret in production", cfg: Config{Env: "production", JWTSecret: "s3cr3t", JWTExpiry: time.Hour}},
		{name: "non-positive expiry", cfg: Config{JWTSecret: "s", JWTExpiry: 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadClient(t *testing.T) {
	t.Setenv("JOBTRACKER_URL", "http://api.local:5000/")
	t.Setenv("JOBTRACKER_TOKEN_FILE", "/tmp/token.json")

	cfg := LoadClient()
	if cfg.BaseURL != "http://api.local:5000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.TokenFile != "/tmp/token.json" {
		t.Errorf("TokenFile = %q", cfg.TokenFile)
	}
}
