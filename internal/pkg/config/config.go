package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
)

const (
	defaultPort            = 8080
	defaultDBURL           = "reminder.db"
	defaultExpoPushURL     = "https://exp.host/--/api/v2/push/send"
	defaultDueTickSpec     = "@every 1m"
	defaultCleanupSpec     = "0 0 0 * * *" // seconds precision: daily at midnight
	defaultDueBatchSize    = 50
	defaultDispatchTimeout = 10 * time.Second
	defaultAlertRatePerMin = 1
)

// Config holds every setting read from the environment.
type Config struct {
	Port int

	DBURL      string
	DBLogLevel string

	LogLevel  string
	LogFormat string

	ExpoPushURL     string
	ExpoAccessToken string

	DueTickSpec         string
	CleanupSpec         string
	DueBatchSize        int
	DispatchTimeout     time.Duration
	MaxDispatchAttempts int

	// Optional LINE operator alerts. Alerts are disabled unless all three are set.
	LineChannelSecret string
	LineChannelToken  string
	LineAdminUserID   string
	AlertRatePerMin   int
}

// AlertsEnabled reports whether LINE operator alerts are configured.
func (c *Config) AlertsEnabled() bool {
	return c.LineChannelSecret != "" && c.LineChannelToken != "" && c.LineAdminUserID != ""
}

// Load reads the configuration from the environment (after .env autoload).
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBURL:             stringOr(getenv("BLUEPRINT_DB_URL"), defaultDBURL),
		DBLogLevel:        stringOr(getenv("DB_LOG_LEVEL"), "silent"),
		LogLevel:          stringOr(getenv("LOG_LEVEL"), "info"),
		LogFormat:         stringOr(getenv("LOG_FORMAT"), "console"),
		ExpoPushURL:       stringOr(getenv("EXPO_PUSH_URL"), defaultExpoPushURL),
		ExpoAccessToken:   strings.TrimSpace(getenv("EXPO_ACCESS_TOKEN")),
		DueTickSpec:       stringOr(getenv("DUE_TICK_SPEC"), defaultDueTickSpec),
		CleanupSpec:       stringOr(getenv("CLEANUP_SPEC"), defaultCleanupSpec),
		LineChannelSecret: strings.TrimSpace(getenv("CHANNEL_SECRET")),
		LineChannelToken:  strings.TrimSpace(getenv("CHANNEL_ACCESS_TOKEN")),
		LineAdminUserID:   strings.TrimSpace(getenv("MY_USER_ID")),
	}

	var err error
	if cfg.Port, err = intOr(getenv("PORT"), defaultPort); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT: %d out of range", cfg.Port)
	}
	if cfg.DueBatchSize, err = intOr(getenv("DUE_BATCH_SIZE"), defaultDueBatchSize); err != nil {
		return nil, fmt.Errorf("invalid DUE_BATCH_SIZE: %w", err)
	}
	if cfg.DueBatchSize <= 0 {
		return nil, fmt.Errorf("invalid DUE_BATCH_SIZE: must be positive, got %d", cfg.DueBatchSize)
	}
	if cfg.MaxDispatchAttempts, err = intOr(getenv("MAX_DISPATCH_ATTEMPTS"), 0); err != nil {
		return nil, fmt.Errorf("invalid MAX_DISPATCH_ATTEMPTS: %w", err)
	}
	if cfg.MaxDispatchAttempts < 0 {
		return nil, fmt.Errorf("invalid MAX_DISPATCH_ATTEMPTS: must not be negative, got %d", cfg.MaxDispatchAttempts)
	}
	if cfg.AlertRatePerMin, err = intOr(getenv("ALERT_RATE_PER_MIN"), defaultAlertRatePerMin); err != nil {
		return nil, fmt.Errorf("invalid ALERT_RATE_PER_MIN: %w", err)
	}
	if cfg.AlertRatePerMin <= 0 {
		cfg.AlertRatePerMin = defaultAlertRatePerMin
	}

	cfg.DispatchTimeout = defaultDispatchTimeout
	if raw := strings.TrimSpace(getenv("DISPATCH_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DISPATCH_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid DISPATCH_TIMEOUT: must be positive, got %s", d)
		}
		cfg.DispatchTimeout = d
	}

	return cfg, nil
}

func stringOr(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

func intOr(v string, def int) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
