package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration

	CORSOrigin       string
	AllowAdminSignup bool

	UploadDir      string
	StaticDir      string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	RedisURL      string
	StatsCacheTTL time.Duration
}

func Load() *Config {
	return &Config{
		Port:    getEnv("PORT", "8000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "ideaboard"),
		DBPassword: getEnv("DB_PASSWORD", "ideaboard"),
		DBName:     getEnv("DB_NAME", "ideaboard"),

		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", "access-secret-change-me"),
		AccessTokenExpiry:  time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRY_SECONDS", 900)) * time.Second,
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", "refresh-secret-change-me"),
		RefreshTokenExpiry: time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRY_SECONDS", 864000)) * time.Second,

		CORSOrigin:       getEnv("CORS_ORIGIN", "*"),
		AllowAdminSignup: getEnvBool("ALLOW_ADMIN_SIGNUP", false),

		UploadDir:      getEnv("UPLOAD_DIR", "./public/temp"),
		StaticDir:      getEnv("STATIC_DIR", "./public"),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "ideaboard"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MinioPublicURL: getEnv("MINIO_PUBLIC_URL", ""),

		// Statistics cache is disabled when REDIS_URL is empty
		RedisURL:      getEnv("REDIS_URL", ""),
		StatsCacheTTL: time.Duration(getEnvInt("STATS_CACHE_TTL_SECONDS", 60)) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
