package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	Environment   string
	AppPort       string
	AppURL        string
	SessionSecret string
	CSRFSecret    string
	LogLevel      string

	StoreBackend string
	EmailsFile   string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	RedisAddr string
	RedisDB   int
	RedisKey  string

	MessageTimeout    time.Duration
	RateLimitAttempts int
	RateLimitWindow   time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	// Warnings collects problems found while loading that are not fatal.
	// They are logged once the logger exists.
	Warnings []string
}

// Load reads envFile (".env" when empty) if it exists and builds the
// configuration from the environment.
func Load(envFile string) *Config {
	cfg := &Config{}

	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if _, statErr := os.Stat(envFile); statErr == nil {
			cfg.warn("%s exists but couldn't be loaded: %v", envFile, err)
		}
	}

	cfg.Environment = getEnv("ENVIRONMENT", "development")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.AppURL = getEnv("APP_URL", "")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.SessionSecret = getEnv("SESSION_SECRET", "")
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = cfg.generateRandomSecret("SESSION_SECRET")
	}
	cfg.CSRFSecret = getEnv("CSRF_SECRET", "")
	if cfg.CSRFSecret == "" {
		cfg.CSRFSecret = cfg.generateRandomSecret("CSRF_SECRET")
	}

	if cfg.AppURL == "" {
		if cfg.IsProduction() {
			cfg.warn("APP_URL not set in production, CSRF origin validation may fail")
		} else {
			cfg.AppURL = "http://localhost:" + cfg.AppPort
		}
	}

	cfg.StoreBackend = strings.ToLower(getEnv("STORE_BACKEND", BackendFile))
	cfg.EmailsFile = getEnv("EMAILS_FILE", "emails.txt")

	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	if cfg.DatabaseURL != "" {
		cfg.parseDBURL()
	} else {
		cfg.DBHost = getEnv("DB_HOST", "localhost")
		cfg.DBPort = getEnv("DB_PORT", "5432")
		cfg.DBUser = getEnv("DB_USER", "postgres")
		cfg.DBPassword = getEnv("DB_PASSWORD", "password")
		cfg.DBName = getEnv("DB_NAME", "emails")
	}

	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisDB = cfg.getEnvInt("REDIS_DB", 0)
	cfg.RedisKey = getEnv("REDIS_KEY", "emails")

	cfg.MessageTimeout = cfg.getEnvDuration("MESSAGE_TIMEOUT", 3*time.Second)
	cfg.RateLimitAttempts = cfg.getEnvInt("RATE_LIMIT_ATTEMPTS", 10)
	cfg.RateLimitWindow = cfg.getEnvDuration("RATE_LIMIT_WINDOW", time.Minute)

	cfg.SMTPHost = getEnv("SMTP_HOST", "")
	cfg.SMTPPort = cfg.getEnvInt("SMTP_PORT", 587)
	cfg.SMTPUsername = getEnv("SMTP_USERNAME", "")
	cfg.SMTPPassword = getEnv("SMTP_PASSWORD", "")
	cfg.EmailFrom = getEnv("EMAIL_FROM", "")

	return cfg
}

// Validate reports settings that make the application unable to start.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendFile:
		if c.EmailsFile == "" {
			return fmt.Errorf("EMAILS_FILE is required for the %s backend", BackendFile)
		}
	case BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want %s, %s or %s)",
			c.StoreBackend, BackendFile, BackendPostgres, BackendRedis)
	}

	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT is required")
	}
	if c.RateLimitAttempts <= 0 {
		return fmt.Errorf("RATE_LIMIT_ATTEMPTS must be positive, got %d", c.RateLimitAttempts)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func (c *Config) getEnvInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.warn("invalid %s %q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func (c *Config) getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		c.warn("invalid %s %q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func (c *Config) parseDBURL() {
	u, err := url.Parse(c.DatabaseURL)
	if err != nil {
		c.warn("error parsing DATABASE_URL: %v", err)
		return
	}

	c.DBHost = u.Hostname()
	c.DBPort = u.Port()
	if c.DBPort == "" {
		c.DBPort = "5432"
	}

	c.DBUser = u.User.Username()
	if password, ok := u.User.Password(); ok {
		c.DBPassword = password
	}

	c.DBName = strings.TrimPrefix(u.Path, "/")
}

func (c *Config) generateRandomSecret(name string) string {
	c.warn("%s not set, generating random secret (will not persist across restarts)", name)

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("failed to generate random secret for %s: %v", name, err))
	}

	return base64.StdEncoding.EncodeToString(b)
}

func (c *Config) warn(format string, args ...interface{}) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
