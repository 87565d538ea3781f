package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	CatalogBaseURL  string
	SheetsWebAppURL string
	RedisURL        string
	SessionTTL      int
	Currency        string
	Locale          string
	SubmitTimeout   int
	CatalogTimeout  int
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		CatalogBaseURL:  getEnv("CATALOG_BASE_URL", "http://localhost:8081/data"),
		SheetsWebAppURL: getEnv("SHEETS_WEBAPP_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		SessionTTL:      getEnvAsInt("SESSION_TTL", 3600),
		Currency:        getEnv("CURRENCY", "MXN"),
		Locale:          getEnv("LOCALE", "es-MX"),
		SubmitTimeout:   getEnvAsInt("SUBMIT_TIMEOUT", 15),
		CatalogTimeout:  getEnvAsInt("CATALOG_TIMEOUT", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
