package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string
	APIKey      string // API key clients must present to the session API

	// Session store
	StoreBackend string // "postgres" or "memory"
	DBUser       string
	DBPassword   string
	DBHost       string
	DBPort       string
	DBName       string

	// Remote ledger (the upstream game API coins are reconciled against)
	LedgerBaseURL string
	LedgerToken   string
	LedgerTimeout time.Duration

	// Hot-session cache
	SessionCacheSize int
	SessionCacheTTL  time.Duration

	// Event publishing
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// LogDir receives timestamped session logs alongside stdout
	LogDir string

	// DevMode relaxes auth and uses the in-memory store
	DevMode bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
		ServiceName:         getEnv("SERVICE_NAME", DefaultServiceName),
		Version:             getEnv("VERSION", "dev"),
		Environment:         getEnv("ENVIRONMENT", "dev"),
		APIKey:              getEnv("API_KEY", ""),
		StoreBackend:        getEnv("STORE_BACKEND", StoreBackendPostgres),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBName:              getEnv("DB_NAME", "tapcore"),
		LedgerBaseURL:       getEnv("LEDGER_BASE_URL", ""),
		LedgerToken:         getEnv("LEDGER_TOKEN", ""),
		LedgerTimeout:       getEnvAsDuration("LEDGER_TIMEOUT", DefaultLedgerTimeout),
		SessionCacheSize:    getEnvAsInt("SESSION_CACHE_SIZE", DefaultSessionCacheSize),
		SessionCacheTTL:     getEnvAsDuration("SESSION_CACHE_TTL", DefaultSessionCacheTTL),
		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", 0),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", 0),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", ""),
		LogDir:              getEnv("LOG_DIR", DefaultLogDir),
		DevMode:             getEnvAsBool("DEV_MODE", false),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" && !cfg.DevMode {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if cfg.LedgerBaseURL == "" && !cfg.DevMode {
		return nil, fmt.Errorf("LEDGER_BASE_URL environment variable must be set")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsDuration retrieves a duration environment variable or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsBool retrieves a boolean environment variable or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
