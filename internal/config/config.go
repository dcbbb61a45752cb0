package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the client core.
type Config struct {
	App          AppConfig
	Logger       LoggerConfig
	Provider     ProviderConfig
	StubProvider StubProviderConfig
	Directory    DirectoryConfig
	Notification NotificationConfig
	Session      SessionConfig
}

// AppConfig identifies the process.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// ProviderConfig points at the external identity provider. Both values
// empty means the provider is not configured and the auth session runs in
// its fixed unconfigured mode.
type ProviderConfig struct {
	URL     string
	AnonKey string
}

// Configured reports whether provider credentials are present.
func (p ProviderConfig) Configured() bool {
	return strings.TrimSpace(p.URL) != "" && strings.TrimSpace(p.AnonKey) != ""
}

// StubProviderConfig configures the local identity-provider emulator.
type StubProviderConfig struct {
	Host            string
	Port            string
	JWTSecret       string
	TokenTTLMinutes int
	BcryptCost      int
}

// Addr returns the emulator bind address.
func (s StubProviderConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// DirectoryConfig controls business directory seeding.
type DirectoryConfig struct {
	SeedPath string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// SessionConfig fixes the identity the process acts as.
type SessionConfig struct {
	CurrentUserID string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ttl := getEnvAsInt("STUB_PROVIDER_TOKEN_TTL_MINUTES", 60)
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid STUB_PROVIDER_TOKEN_TTL_MINUTES: %d", ttl)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "partner-hub"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Provider: ProviderConfig{
			URL:     os.Getenv("AUTH_PROVIDER_URL"),
			AnonKey: os.Getenv("AUTH_PROVIDER_ANON_KEY"),
		},
		StubProvider: StubProviderConfig{
			Host:            getEnv("STUB_PROVIDER_HOST", "127.0.0.1"),
			Port:            getEnv("STUB_PROVIDER_PORT", "9999"),
			JWTSecret:       getEnv("STUB_PROVIDER_JWT_SECRET", "dev-secret"),
			TokenTTLMinutes: ttl,
			BcryptCost:      getEnvAsInt("STUB_PROVIDER_BCRYPT_COST", 10),
		},
		Directory: DirectoryConfig{
			SeedPath: os.Getenv("DIRECTORY_SEED_PATH"),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@oneapp.sk"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
		Session: SessionConfig{
			CurrentUserID: getEnv("SESSION_CURRENT_USER_ID", "u1"),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
