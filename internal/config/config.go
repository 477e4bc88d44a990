package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	Environment string
	HTTPPort    string
	Secret      string

	DBDriver    string
	DatabaseDSN string

	PublicBaseURL   string
	UploadDir       string
	UploadMaxBytes  int64
	StorageProvider string
	GCSBucket       string

	RedisAddress   string
	AllowedOrigins []string
	RateLimit      string

	SalesStrict bool
	SalesTZ     string

	LogLevel        string
	SeedProductsCSV string
	SeedReset       bool
}

const (
	StorageProviderLocal = "local"
	StorageProviderGCS   = "gcs"
)

// Load reads configuration from the environment (and an optional .env file) with reasonable defaults.
func Load() Config {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	port := getEnv("HTTP_PORT", "8080")
	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", "sqlite"))
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" && driver == "sqlite" {
		dsn = "file:pos.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	maxBytes, err := strconv.ParseInt(getEnv("UPLOAD_MAX_BYTES", "5242880"), 10, 64)
	if err != nil || maxBytes <= 0 {
		maxBytes = 5 << 20
	}

	return Config{
		Environment:     getEnv("APP_ENV", "local"),
		HTTPPort:        port,
		Secret:          getEnv("SECRET", "dev_secret"),
		DBDriver:        driver,
		DatabaseDSN:     dsn,
		PublicBaseURL:   strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),
		UploadDir:       getEnv("UPLOAD_DIR", "public/assets/img"),
		UploadMaxBytes:  maxBytes,
		StorageProvider: strings.ToLower(getEnv("STORAGE_PROVIDER", StorageProviderLocal)),
		GCSBucket:       os.Getenv("GCS_BUCKET"),
		RedisAddress:    os.Getenv("REDIS_ADDRESS"),
		AllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:4200,http://192.168.1.24:4200")),
		RateLimit:       getEnv("RATE_LIMIT", "300-M"),
		SalesStrict:     getBool("SALES_STRICT"),
		SalesTZ:         os.Getenv("TZ_NAME"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SeedProductsCSV: os.Getenv("SEED_PRODUCTS_CSV"),
		SeedReset:       getBool("SEED_RESET"),
	}
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// SalesLocation is the time zone that decides which calendar day a sale belongs to.
func (c Config) SalesLocation() *time.Location {
	if c.SalesTZ == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.SalesTZ)
	if err != nil {
		log.Printf("invalid TZ_NAME value %q, using local time", c.SalesTZ)
		return time.Local
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
