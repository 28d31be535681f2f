package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	JWTSecret  string

	// External calendar provider settings.
	CalendarClientID     string
	CalendarClientSecret string
	CalendarRedirectURL  string
	CalendarAuthURL      string
	CalendarTokenURL     string
	CalendarEventsURL    string
	CalendarTimeZone     string
	CalendarTimeout      time.Duration

	DefaultAvatar string
	SwaggerHost   string
}

// Load builds Config from environment with sensible defaults.
// A .env file is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/medibook?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:  getEnv("JWT_SECRET", "change-me"),

		CalendarClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		CalendarClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		CalendarRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "https://doc-patient-fe.vercel.app/auth/google/callback"),
		CalendarAuthURL:      getEnv("CALENDAR_AUTH_URL", "https://accounts.google.com/o/oauth2/auth"),
		CalendarTokenURL:     getEnv("CALENDAR_TOKEN_URL", "https://oauth2.googleapis.com/token"),
		CalendarEventsURL:    getEnv("CALENDAR_EVENTS_URL", "https://www.googleapis.com/calendar/v3"),
		CalendarTimeZone:     getEnv("CALENDAR_TIMEZONE", "Asia/Kolkata"),
		CalendarTimeout:      getEnvDuration("CALENDAR_TIMEOUT", 10*time.Second),

		DefaultAvatar: getEnv("DEFAULT_AVATAR", "profile-default.png"),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
