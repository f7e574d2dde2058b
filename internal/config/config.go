package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Media    MediaConfig
	Ai       AIConfig
	Client   ClientConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	ArchiveTopic       string
}

type DatabaseConfig struct {
	Connection string
}

type MediaConfig struct {
	DownloadDir     string
	YtDlpPath       string
	MaxFileSizeMB   int
	CleanupAgeHours int
}

type AIConfig struct {
	WhisperBaseURL    string
	WhisperModel      string
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	GeminiKey         string
	SummaryModel      string
}

type ClientConfig struct {
	APIBaseURL       string
	PollIntervalSecs int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8090"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8090"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/worker.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			ArchiveTopic:       getEnv("ARCHIVE_TRANSCRIPT_TOPIC_NAME", "ARCHIVE_TRANSCRIPT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Media: MediaConfig{
			DownloadDir:     getEnv("DOWNLOAD_DIR", "/tmp/hybrid-brain-downloads"),
			YtDlpPath:       getEnv("YTDLP_PATH", "yt-dlp"),
			MaxFileSizeMB:   getEnvAsInt("MAX_DOWNLOAD_SIZE_MB", 500),
			CleanupAgeHours: getEnvAsInt("CLEANUP_MAX_AGE_HOURS", 24),
		},
		Ai: AIConfig{
			WhisperBaseURL:    getEnv("WHISPER_BASE_URL", "http://localhost:9000"),
			WhisperModel:      getEnv("WHISPER_MODEL", "small"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GeminiKey:         getEnv("GOOGLE_GEMINI_API_KEY", ""),
			SummaryModel:      getEnv("SUMMARY_MODEL", "llama3"),
		},
		Client: ClientConfig{
			APIBaseURL:       getEnv("BRAIN_API_URL", "http://localhost:3000/api"),
			PollIntervalSecs: getEnvAsInt("JOB_POLL_INTERVAL_SECONDS", 5),
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
