package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort   string `mapstructure:"APP_PORT"`
	Env       string `mapstructure:"ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	JWTSecret string `mapstructure:"JWT_SECRET"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQuotaDB  int    `mapstructure:"REDIS_QUOTA_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Gemini configuration.
	GeminiAPIKey        string `mapstructure:"GEMINI_API_KEY"`
	GeminiPrimaryModel  string `mapstructure:"GEMINI_PRIMARY_MODEL"`
	GeminiFallbackModel string `mapstructure:"GEMINI_FALLBACK_MODEL"`

	// Chat pipeline tuning.
	AIRequestTimeoutSec int    `mapstructure:"AI_REQUEST_TIMEOUT_SEC"`
	AIMaxAttempts       int    `mapstructure:"AI_MAX_ATTEMPTS"`
	AIBackoffSchedule   string `mapstructure:"AI_BACKOFF_SCHEDULE"`
	MaxMessageChars     int    `mapstructure:"MAX_MESSAGE_CHARS"`
	MaxImageBase64Len   int    `mapstructure:"MAX_IMAGE_BASE64_LEN"`
	MaxImageBytes       int    `mapstructure:"MAX_IMAGE_BYTES"`
	ChatQuotaLimit      int    `mapstructure:"CHAT_QUOTA_LIMIT"`
	ChatQuotaWindowMin  int    `mapstructure:"CHAT_QUOTA_WINDOW_MIN"`

	// External service credentials.
	FirebaseServiceAccountKeyPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
	GoogleServiceAccountFile      string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`
	CloudinaryURL                 string `mapstructure:"CLOUDINARY_URL"`
	StaffAlertTopic               string `mapstructure:"STAFF_ALERT_TOPIC"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUOTA_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("GEMINI_PRIMARY_MODEL", "models/gemini-2.5-flash")
	viper.SetDefault("GEMINI_FALLBACK_MODEL", "models/gemini-2.0-flash")
	viper.SetDefault("AI_REQUEST_TIMEOUT_SEC", 30)
	viper.SetDefault("AI_MAX_ATTEMPTS", 3)
	viper.SetDefault("AI_BACKOFF_SCHEDULE", "1s,2s,5s")
	viper.SetDefault("MAX_MESSAGE_CHARS", 5000)
	viper.SetDefault("MAX_IMAGE_BASE64_LEN", 10_000_000)
	viper.SetDefault("MAX_IMAGE_BYTES", 5*1024*1024)
	viper.SetDefault("CHAT_QUOTA_LIMIT", 30)
	viper.SetDefault("CHAT_QUOTA_WINDOW_MIN", 60)
	viper.SetDefault("STAFF_ALERT_TOPIC", "staff-alerts")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
