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

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Commerce CommerceConfig
	Checkout CheckoutConfig
	Export   ExportConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	// Secret must match the key the upstream commerce API signs access
	// tokens with; this service only verifies, it never mints user tokens.
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// CommerceConfig configures the upstream commerce API client.
type CommerceConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type CheckoutConfig struct {
	// CartRetention is how long an untouched cart survives before the
	// sweeper purges it.
	CartRetention time.Duration
	// QuoteTTL bounds how long a shipping quote stays in the Redis mirror
	// before checkout demands a refresh.
	QuoteTTL time.Duration
}

type ExportConfig struct {
	S3 S3Config
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "machbazar"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  parseBool(getEnv("REDIS_ENABLED", "true")),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Commerce: CommerceConfig{
			BaseURL: getEnv("COMMERCE_API_BASE_URL", "http://localhost:9000/api"),
			APIKey:  getEnv("COMMERCE_API_KEY", ""),
			Timeout: parseDuration(getEnv("COMMERCE_API_TIMEOUT", "30s"), 30*time.Second),
		},
		Checkout: CheckoutConfig{
			CartRetention: parseDuration(getEnv("CART_RETENTION", "720h"), 720*time.Hour),
			QuoteTTL:      parseDuration(getEnv("QUOTE_TTL", "15m"), 15*time.Minute),
		},
		Export: ExportConfig{
			S3: S3Config{
				Region:          getEnv("AWS_REGION", "ap-southeast-1"),
				Bucket:          getEnv("AWS_S3_BUCKET", "machbazar-exports"),
				AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			},
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
