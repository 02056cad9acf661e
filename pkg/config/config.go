package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port      string
	BaseURL   string
	LogLevel  string
	LogFormat string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret         string
	JWTExpiry         time.Duration
	AdminEmail        string
	AdminPasswordHash string

	// Subscriber store backend: "postgres" (email_subscribers table) or
	// "resend" (provider audience).
	SubscriberBackend string
	ResendAPIKey      string
	ResendAudienceID  string
	FromAddress       string

	UploadDir       string
	MaxUploadSizeMB int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "photoblog")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	v.SetDefault("JWT_EXPIRY", "24h")
	v.SetDefault("ADMIN_EMAIL", "admin@localhost")

	v.SetDefault("SUBSCRIBER_BACKEND", "postgres")
	v.SetDefault("FROM_ADDRESS", "Continued Education <noreply@localhost>")

	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("MAX_UPLOAD_SIZE_MB", 50)

	return &Config{
		Port:      v.GetString("PORT"),
		BaseURL:   strings.TrimRight(v.GetString("BASE_URL"), "/"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),

		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTExpiry:         v.GetDuration("JWT_EXPIRY"),
		AdminEmail:        v.GetString("ADMIN_EMAIL"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),

		SubscriberBackend: v.GetString("SUBSCRIBER_BACKEND"),
		ResendAPIKey:      v.GetString("RESEND_API_KEY"),
		ResendAudienceID:  v.GetString("RESEND_AUDIENCE_ID"),
		FromAddress:       v.GetString("FROM_ADDRESS"),

		UploadDir:       v.GetString("UPLOAD_DIR"),
		MaxUploadSizeMB: v.GetInt("MAX_UPLOAD_SIZE_MB"),
	}
}
