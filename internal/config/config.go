package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App  AppConfig
	Keys APIKeys
	Chat ChatConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type APIKeys struct {
	GoogleGemini string
	Pixabay      string
	Pexels       string
}

type ChatConfig struct {
	// SessionStore selects the session repository backend: "memory" or "redis".
	SessionStore string

	// ImageCount is the fixed number of images requested per dispatch.
	ImageCount int

	// ProviderTimeoutSeconds bounds every outbound provider call.
	ProviderTimeoutSeconds int

	// CaptureEnabled reports whether the deployment offers voice input.
	CaptureEnabled bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Pixabay:      getEnv("PIXABAY_API_KEY", ""),
			Pexels:       getEnv("PEXELS_API_KEY", ""),
		},
		Chat: ChatConfig{
			SessionStore:           getEnv("SESSION_STORE", "memory"),
			ImageCount:             getEnvAsInt("CHAT_IMAGE_COUNT", 3),
			ProviderTimeoutSeconds: getEnvAsInt("PROVIDER_TIMEOUT_SECONDS", 15),
			CaptureEnabled:         getEnv("CAPTURE_ENABLED", "true") == "true",
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
