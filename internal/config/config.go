package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

// Config is the server configuration read from the environment.
type Config struct {
	Port          string
	Env           string
	StoreDriver   string
	DatabaseDSN   string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	JWTExpiry     time.Duration
	CORSOrigins   []string
}

// Load reads the server configuration. Unset variables fall back to development defaults.
func Load() Config {
	return Config{
		Port:          getEnv("PORT", "5000"),
		Env:           getEnv("ENV", "development"),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", "mysql")),
		DatabaseDSN:   getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/jobtracker?parseTime=true"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "jobtracker"),
		JWTSecret:     getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:     getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

// Validate rejects configurations that must not be served.
func (c Config) Validate() error {
	if c.Env == "production" && c.JWTSecret == devJWTSecret {
		return errors.New("JWT_SECRET must be set in production environment")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWTExpiry <= 0 {
		return errors.New("JWT_EXPIRY must be positive")
	}
	return nil
}

// ClientConfig is the terminal client configuration.
type ClientConfig struct {
	BaseURL   string
	TokenFile string
}

// LoadClient reads the client configuration.
func LoadClient() ClientConfig {
	tokenFile := os.Getenv("JOBTRACKER_TOKEN_FILE")
	if tokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		tokenFile = home + "/.jobtracker/token.json"
	}

	return ClientConfig{
		BaseURL:   strings.TrimRight(getEnv("JOBTRACKER_URL", "http://localhost:5000"), "/"),
		TokenFile: tokenFile,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
