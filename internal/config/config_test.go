package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rojak/internal/translate"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

var envVars = []string{
	"API_PORT", "LOG_LEVEL", "LOG_FORMAT", "DB_PATH",
	"GENERATOR_URL", "GENERATOR_MODEL", "GENERATOR_API_KEY", "GENERATION_TIMEOUT",
	"DECODING_MODE", "SLANG_EXPANSION",
	"FIREBASE_CREDENTIALS", "FIREBASE_PROJECT_ID", "FIREBASE_WEB_API_KEY", "PASSWORD_RESET_URL",
	"NATS_URL", "NATS_SUBJECT", "SESSION_IDLE_TTL",
}

func TestLoad(t *testing.T) {
	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
	}

	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "default values",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "rojak.db"))
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "8501" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text" &&
					cfg.GeneratorURL == "https://api-inference.huggingface.co" &&
					cfg.GeneratorModel == "mesolitica/nanot5-small-malaysian-translation-v2" &&
					cfg.GenerationTimeout == 0 &&
					cfg.DecodingMode == translate.ModeStrict &&
					!cfg.SlangExpansion &&
					!cfg.UseFirebase() &&
					cfg.NATSURL == "" &&
					cfg.NATSSubject == "rojak.translation.completed" &&
					cfg.SessionIdleTTL == 24*time.Hour
			},
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "custom", "db.db"))
				setEnv("API_PORT", "9000")
				setEnv("LOG_LEVEL", "debug")
				setEnv("LOG_FORMAT", "JSON")
				setEnv("GENERATOR_URL", "http://localhost:8080/")
				setEnv("GENERATION_TIMEOUT", "45s")
				setEnv("DECODING_MODE", "default")
				setEnv("SLANG_EXPANSION", "true")
				setEnv("NATS_URL", "nats://127.0.0.1:4222")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "9000" &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json" &&
					cfg.GeneratorURL == "http://localhost:8080" &&
					cfg.GenerationTimeout == 45*time.Second &&
					cfg.DecodingMode == translate.ModeDefault &&
					cfg.SlangExpansion &&
					cfg.NATSURL == "nats://127.0.0.1:4222" &&
					filepath.Base(cfg.DBPath) == "db.db"
			},
		},
		{
			name: "firebase enabled",
			setupEnv: func(t *testing.T) {
				setEnv("FIREBASE_CREDENTIALS", "/secrets/sa.json")
				setEnv("FIREBASE_WEB_API_KEY", "web-key")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.UseFirebase() && cfg.FirebaseWebAPIKey == "web-key"
			},
		},
		{
			name: "firebase without web api key",
			setupEnv: func(t *testing.T) {
				setEnv("FIREBASE_CREDENTIALS", "/secrets/sa.json")
			},
			wantErr: true,
		},
		{
			name: "invalid decoding mode",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "rojak.db"))
				setEnv("DECODING_MODE", "sampling")
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "rojak.db"))
				setEnv("LOG_LEVEL", "loud")
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "rojak.db"))
				setEnv("LOG_FORMAT", "xml")
			},
			wantErr: true,
		},
		{
			name: "invalid generation timeout",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "rojak.db"))
				setEnv("GENERATION_TIMEOUT", "soon")
			},
			wantErr: true,
		},
		{
			name: "negative generation timeout",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "rojak.db"))
				setEnv("GENERATION_TIMEOUT", "-1s")
			},
			wantErr: true,
		},
		{
			name: "invalid session idle ttl",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "rojak.db"))
				setEnv("SESSION_IDLE_TTL", "forever")
			},
			wantErr: true,
		},
		{
			name: "invalid slang expansion flag",
			setupEnv: func(t *testing.T) {
				setEnv("DB_PATH", filepath.Join(t.TempDir(), "rojak.db"))
				setEnv("SLANG_EXPANSION", "maybe")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Change to a temp directory without .env file to avoid loading it
			tmpDir := t.TempDir()
			originalWd, _ := os.Getwd()
			_ = os.Chdir(tmpDir)
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			for _, key := range envVars {
				unsetEnv(key)
			}
			defer func() {
				for key, value := range originalEnv {
					if value != "" {
						setEnv(key, value)
					} else {
						unsetEnv(key)
					}
				}
			}()

			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if cfg == nil {
				t.Fatal("Load() returned nil config")
			}

			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	}()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test", "db.db")
	setEnv("DB_PATH", dbPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("Load() should create data directory: %v", err)
	}

	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestGetEnv(t *testing.T) {
	originalValue := os.Getenv("TEST_ENV_VAR")
	defer func() {
		if originalValue != "" {
			setEnv("TEST_ENV_VAR", originalValue)
		} else {
			unsetEnv("TEST_ENV_VAR")
		}
	}()

	tests := []struct {
		name         string
		setupEnv     func()
		key          string
		defaultValue string
		want         string
	}{
		{
			name:         "env var set",
			setupEnv:     func() { setEnv("TEST_ENV_VAR", "set-value") },
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "set-value",
		},
		{
			name:         "env var not set",
			setupEnv:     func() { unsetEnv("TEST_ENV_VAR") },
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
		{
			name:         "empty env var uses default",
			setupEnv:     func() { setEnv("TEST_ENV_VAR", "") },
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()
			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("parseLogLevel() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLogLevel() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseLogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
