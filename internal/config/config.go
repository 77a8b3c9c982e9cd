package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"rojak/internal/translate"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	DBPath string

	GeneratorURL      string
	GeneratorModel    string
	GeneratorAPIKey   string
	GenerationTimeout time.Duration
	DecodingMode      translate.Mode
	SlangExpansion    bool

	FirebaseCredentials string
	FirebaseProjectID   string
	FirebaseWebAPIKey   string
	PasswordResetURL    string

	NATSURL     string
	NATSSubject string

	SessionIdleTTL time.Duration
}

// UseFirebase reports whether Firebase should back identity and persistence.
func (c *Config) UseFirebase() bool {
	return c.FirebaseCredentials != ""
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or one of its parents, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:             getEnv("API_PORT", "8501"),
		LogFormat:           strings.ToLower(getEnv("LOG_FORMAT", "text")),
		DBPath:              getEnv("DB_PATH", "./data/rojak.db"),
		GeneratorURL:        strings.TrimRight(getEnv("GENERATOR_URL", "https://api-inference.huggingface.co"), "/"),
		GeneratorModel:      getEnv("GENERATOR_MODEL", "mesolitica/nanot5-small-malaysian-translation-v2"),
		GeneratorAPIKey:     getEnv("GENERATOR_API_KEY", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		FirebaseProjectID:   getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseWebAPIKey:   getEnv("FIREBASE_WEB_API_KEY", ""),
		PasswordResetURL:    getEnv("PASSWORD_RESET_URL", "http://localhost:8501/reset-password"),
		NATSURL:             getEnv("NATS_URL", ""),
		NATSSubject:         getEnv("NATS_SUBJECT", "rojak.translation.completed"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	mode, err := translate.ParseMode(getEnv("DECODING_MODE", string(translate.ModeStrict)))
	if err != nil {
		return nil, fmt.Errorf("DECODING_MODE: %w", err)
	}
	cfg.DecodingMode = mode

	// 0 means no timeout around generation
	timeout, err := time.ParseDuration(getEnv("GENERATION_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("GENERATION_TIMEOUT must be a valid duration: %w", err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("GENERATION_TIMEOUT must not be negative")
	}
	cfg.GenerationTimeout = timeout

	idleTTL, err := time.ParseDuration(getEnv("SESSION_IDLE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_IDLE_TTL must be a valid duration: %w", err)
	}
	cfg.SessionIdleTTL = idleTTL

	slangStr := getEnv("SLANG_EXPANSION", "false")
	slangOn, err := strconv.ParseBool(slangStr)
	if err != nil {
		return nil, fmt.Errorf("SLANG_EXPANSION must be a boolean: %w", err)
	}
	cfg.SlangExpansion = slangOn

	if cfg.UseFirebase() && cfg.FirebaseWebAPIKey == "" {
		return nil, fmt.Errorf("FIREBASE_WEB_API_KEY is required when FIREBASE_CREDENTIALS is set")
	}

	if !cfg.UseFirebase() {
		dataDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// parseLogLevel maps a LOG_LEVEL value to a slog.Level.
func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	return level, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
