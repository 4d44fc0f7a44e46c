package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Planner  PlannerConfig
	Voice    VoiceConfig
	Speech   SpeechConfig
	CORS     CORSConfig
	Admin    AdminConfig
	Log      LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port              string
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	// ScreenIdleTTL is how long an untouched plan screen is kept in memory.
	ScreenIdleTTL time.Duration
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL         string
	MaxConns    int
	MaxLifetime time.Duration
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret     string
	SessionTTL time.Duration
	BearerTTL  time.Duration
}

// PlannerConfig points at the external plan-generation service.
type PlannerConfig struct {
	URL     string
	Timeout time.Duration
}

// VoiceConfig points at the voice backend.
type VoiceConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SpeechConfig selects how agent replies are spoken.
type SpeechConfig struct {
	Provider string // "browser" or "openai"
	APIKey   string
	Model    string
	Voice    string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

// AdminConfig holds the placeholder admin policy.
type AdminConfig struct {
	// EmailDomain grants the admin role at registration, e.g. "@admin.com".
	EmailDomain string
}

// LogConfig selects the zap preset.
type LogConfig struct {
	Development bool
	Level       string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("Warning: .env file not found: %v", err)
		}
	}

	config := FromEnv()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FromEnv reads the process environment without touching .env files.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "3000"),
			ReadHeaderTimeout: getDurationEnv("SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
			IdleTimeout:       getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout:   getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
			ScreenIdleTTL:     getDurationEnv("SCREEN_IDLE_TTL", 30*time.Minute),
			SecureCookies:     getBoolEnv("SECURE_COOKIES", false),
		},
		Database: DatabaseConfig{
			URL:         getEnv("POSTGRES_URL", ""),
			MaxConns:    getIntEnv("DB_MAX_CONNS", 5),
			MaxLifetime: getDurationEnv("DB_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			SessionTTL: getDurationEnv("JWT_SESSION_TTL", 5*24*time.Hour),
			BearerTTL:  getDurationEnv("JWT_BEARER_TTL", 5*time.Minute),
		},
		Planner: PlannerConfig{
			URL:     getEnv("PLANNER_URL", "https://zenjourney-backend2.onrender.com/travel/plan"),
			Timeout: getDurationEnv("PLANNER_TIMEOUT", 60*time.Second),
		},
		Voice: VoiceConfig{
			BaseURL: strings.TrimRight(getEnv("VOICE_BACKEND_URL", "http://localhost:8002"), "/"),
			Timeout: getDurationEnv("VOICE_BACKEND_TIMEOUT", 30*time.Second),
		},
		Speech: SpeechConfig{
			Provider: strings.ToLower(getEnv("SPEECH_PROVIDER", "browser")),
			APIKey:   getEnv("OPENAI_API_KEY", ""),
			Model:    getEnv("OPENAI_TTS_MODEL", "tts-1"),
			Voice:    getEnv("OPENAI_TTS_VOICE", "alloy"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getStringSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
			AllowedHeaders:   getStringSliceEnv("CORS_ALLOWED_HEADERS", []string{"*"}),
			AllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", true),
		},
		Admin: AdminConfig{
			EmailDomain: getEnv("ADMIN_EMAIL_DOMAIN", "@admin.com"),
		},
		Log: LogConfig{
			Development: getBoolEnv("LOG_DEVELOPMENT", false),
			Level:       getEnv("LOG_LEVEL", "info"),
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("POSTGRES_URL is required")
	}
	if c.Planner.URL == "" {
		return fmt.Errorf("PLANNER_URL is required")
	}
	if c.Planner.Timeout <= 0 {
		return fmt.Errorf("PLANNER_TIMEOUT must be positive")
	}
	switch c.Speech.Provider {
	case "browser":
	case "openai":
		if c.Speech.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when SPEECH_PROVIDER=openai")
		}
	default:
		return fmt.Errorf("unsupported SPEECH_PROVIDER %q, use 'browser' or 'openai'", c.Speech.Provider)
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var parts []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return defaultValue
	}
	return parts
}
