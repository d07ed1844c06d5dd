package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	BackendBaseURL string
	BackendTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CompetitionFlagKey string
	RankingKey         string
	SettingsKey        string
	OnceTokenTTL       time.Duration
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:            getEnv("API_PORT", "3000"),
		BackendBaseURL:     getEnv("BACKEND_BASE_URL", "http://localhost:8080"),
		BackendTimeout:     time.Duration(getEnvAsInt("HTTP_CLIENT_TIMEOUT_SECONDS", 15)) * time.Second,
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		CompetitionFlagKey: getEnv("COMPETITION_FLAG_KEY", "competencia:activa"),
		RankingKey:         getEnv("COMPETITION_RANKING_KEY", "competencia:clasificados"),
		SettingsKey:        getEnv("COMPETITION_SETTINGS_KEY", "competencia:configuracion"),
		OnceTokenTTL:       time.Duration(getEnvAsInt("ONCE_TOKEN_TTL_SECONDS", 600)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
