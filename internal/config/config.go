package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Keys      APIKeys
	Ai        AIConfig
	Interview InterviewConfig
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

// APIKeys splits the Gemini keys per function so question generation and
// the three feedback passes burn separate quotas.
type APIKeys struct {
	GeminiQuestionGen     string
	GeminiFeedbackScores  string
	GeminiFeedbackSummary string
	GeminiFeedbackFlags   string
	ElevenLabs            string
	ScoreAnswerTopic      string // Async feedback pipeline topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "gemini" or "ollama"
	LLMModel          string // e.g. "gemini-1.5-flash", "llama3"
}

type InterviewConfig struct {
	DefaultQuestionCount int
	TTSVoiceId           string
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
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Keys: APIKeys{
			GeminiQuestionGen:     getEnv("GEMINI_QGEN_API_KEY", ""),
			GeminiFeedbackScores:  getEnv("GEMINI_FEEDBACK_SCORES_API_KEY", ""),
			GeminiFeedbackSummary: getEnv("GEMINI_FEEDBACK_SUMMARY_API_KEY", ""),
			GeminiFeedbackFlags:   getEnv("GEMINI_FEEDBACK_FLAGS_API_KEY", ""),
			ElevenLabs:            getEnv("ELEVENLABS_API_KEY", ""),
			ScoreAnswerTopic:      getEnv("SCORE_ANSWER_TOPIC_NAME", "SCORE_ANSWER"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-1.5-flash"),
		},
		Interview: InterviewConfig{
			DefaultQuestionCount: getEnvAsInt("DEFAULT_QUESTION_COUNT", 6),
			TTSVoiceId:           getEnv("TTS_VOICE_ID", ""),
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
