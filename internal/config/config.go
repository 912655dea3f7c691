package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	JWTSecret  string

	// RedisURL is optional; an empty value disables the settings cache.
	RedisURL         string
	SettingsCacheTTL time.Duration

	CORSOrigin      string
	SMSShortcutName string

	// ManagerUsername/ManagerPassword seed the first manager account on startup.
	ManagerUsername string
	ManagerPassword string
}

var ErrMissingDBHost = errors.New("DB_HOST is not set")

// Load reads the environment (and .env when present) into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:           os.Getenv("DB_HOST"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBPort:           os.Getenv("DB_PORT"),
		AppPort:          getEnv("APP_PORT", "8080"),
		AppEnv:           os.Getenv("APP_ENV"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		RedisURL:         os.Getenv("REDIS_URL"),
		SettingsCacheTTL: getDuration("SETTINGS_CACHE_TTL", time.Minute),
		CORSOrigin:       getEnv("CORS_ORIGIN", "http://localhost:3000"),
		SMSShortcutName:  getEnv("SMS_SHORTCUT_NAME", "주문문자"),
		ManagerUsername:  os.Getenv("MANAGER_USERNAME"),
		ManagerPassword:  os.Getenv("MANAGER_PASSWORD"),
	}

	if cfg.DBHost == "" {
		return nil, ErrMissingDBHost
	}

	return cfg, nil
}

func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal("Environment variables not loaded properly: ", err)
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
