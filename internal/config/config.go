package config

import (
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string
	CacheTTL time.Duration

	AdminEmail        string
	AdminPasswordHash string
	SessionSecret     string
	SessionTTL        time.Duration

	MinIOEndpoint       string
	MinIOPublicEndpoint string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOBucket         string
	MinIOUseSSL         bool
	MinIOPublicUseSSL   bool

	// BlobPublicHost is the only host accepted in blob URLs submitted by clients.
	BlobPublicHost string

	MaxUploadBytes    int64
	UploadConcurrency int

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string

	PostsDir string
}

func Load() *Config {
	publicEndpoint := getEnv("MINIO_PUBLIC_ENDPOINT", getEnv("MINIO_ENDPOINT", "localhost:9000"))

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
		CacheTTL: getDurationEnv("CACHE_TTL", 5*time.Minute),

		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		SessionSecret:     getEnv("SESSION_SECRET", ""),
		SessionTTL:        getDurationEnv("SESSION_TTL", 24*time.Hour),

		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOPublicEndpoint: publicEndpoint,
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:         getEnv("MINIO_BUCKET", "portfolio"),
		MinIOUseSSL:         getBoolEnv("MINIO_USE_SSL", false),
		MinIOPublicUseSSL:   getBoolEnv("MINIO_PUBLIC_USE_SSL", true),

		BlobPublicHost: getEnv("BLOB_PUBLIC_HOST", hostOf(publicEndpoint)),

		MaxUploadBytes:    getInt64Env("MAX_UPLOAD_BYTES", 25*1024*1024),
		UploadConcurrency: getIntEnv("UPLOAD_CONCURRENCY", 4),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),

		PostsDir: getEnv("POSTS_DIR", "posts"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// batchBodyFactor leaves room for several files in one batch request.
const batchBodyFactor = 10

// RequestBodyLimit is the HTTP body limit derived from MaxUploadBytes. A
// non-positive MaxUploadBytes disables the upload cap, so the body limit is
// lifted too instead of falling back to the server default.
func (c *Config) RequestBodyLimit() int {
	if c.MaxUploadBytes <= 0 || c.MaxUploadBytes > math.MaxInt/batchBodyFactor {
		return math.MaxInt
	}
	return int(c.MaxUploadBytes) * batchBodyFactor
}

// hostOf strips the port from an endpoint such as "cdn.example.com:443".
func hostOf(endpoint string) string {
	if strings.Contains(endpoint, "://") {
		if u, err := url.Parse(endpoint); err == nil {
			return u.Hostname()
		}
	}
	if u, err := url.Parse("//" + endpoint); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	return endpoint
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
