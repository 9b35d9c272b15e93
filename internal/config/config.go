package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"kharcha/internal/core"
)

type Config struct {
	// HTTP Server
	Port string

	// Persistence backend: "memory" or "sqlite"
	DataBackend  string
	SQLiteDBPath string

	// Ledger
	InitialBalance string // decimal text, used only when nothing is persisted

	// Summary views
	TopExpensesLimit int
	SummaryCacheTTL  time.Duration
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8082"),
		DataBackend:  getEnv("DATA_BACKEND", "memory"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/kharcha.db"),

		InitialBalance: getEnv("INITIAL_BALANCE", "5000"),

		TopExpensesLimit: getEnvInt("TOP_EXPENSES_LIMIT", 5),
		SummaryCacheTTL:  getEnvDuration("SUMMARY_CACHE_TTL", 5*time.Minute),
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory":
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [memory sqlite]", c.DataBackend))
	}

	if _, err := core.ParseDecimal(c.InitialBalance); err != nil {
		errors = append(errors, fmt.Sprintf("invalid initial balance '%s': must be a non-negative decimal", c.InitialBalance))
	}

	if c.TopExpensesLimit < 1 {
		errors = append(errors, fmt.Sprintf("invalid top expenses limit %d: must be at least 1", c.TopExpensesLimit))
	} else if c.TopExpensesLimit > 100 {
		errors = append(errors, fmt.Sprintf("invalid top expenses limit %d: must be at most 100", c.TopExpensesLimit))
	}

	if c.SummaryCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid summary cache TTL %v: must not be negative", c.SummaryCacheTTL))
	} else if c.SummaryCacheTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid summary cache TTL %v: must be at most 24 hours", c.SummaryCacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// InitialBalanceMoney returns the configured initial balance in cents.
// Call Validate first; malformed values fall back to zero here.
func (c *Config) InitialBalanceMoney() core.Money {
	cents, err := core.ParseDecimal(c.InitialBalance)
	if err != nil {
		return core.Money{}
	}
	return core.Money{Cents: cents}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
