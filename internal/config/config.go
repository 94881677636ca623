package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Text generation
	LLMProvider    string
	AnthropicKey   string
	AnthropicModel string
	GroqKey        string
	GroqModel      string
	GroqBaseURL    string
	CLIPath        string

	QuizQuestionCount int
	QuizMaxQuestions  int

	// Persistence
	StorageBackend string
	DataDir        string
	DB             DBConfig
	SQLitePath     string

	// Active quiz sessions
	SessionBackend string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SessionTTL     time.Duration

	JWTSecret string

	// Speech
	TTSCommand    string
	TTSRate       int
	TTSPause      time.Duration
	AudioDir      string
	SpeechWorkers int
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		LLMProvider:    getEnv("LLM_PROVIDER", ""),
		AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel: getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		GroqKey:        os.Getenv("GROQ_API_KEY"),
		GroqModel:      getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		GroqBaseURL:    getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		CLIPath:        getEnv("CLAUDE_CLI_PATH", "claude"),

		QuizQuestionCount: getEnvInt("QUIZ_QUESTION_COUNT", 5),
		QuizMaxQuestions:  getEnvInt("QUIZ_MAX_QUESTIONS", 20),

		StorageBackend: getEnv("STORAGE_BACKEND", "file"),
		DataDir:        getEnv("DATA_DIR", "user_data"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "neuro_user"),
			Password: getEnv("DB_PASSWORD", "neuro_password"),
			Name:     getEnv("DB_NAME", "neurolearn"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		SQLitePath: getEnv("SQLITE_PATH", "neurolearn.db"),

		SessionBackend: getEnv("SESSION_BACKEND", "memory"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		SessionTTL:     getEnvDuration("SESSION_TTL", 24*time.Hour),

		JWTSecret: getEnv("JWT_SECRET", "neurolearn-dev-signing-key"),

		TTSCommand:    getEnv("TTS_COMMAND", "espeak-ng"),
		TTSRate:       getEnvInt("TTS_RATE", 150),
		TTSPause:      getEnvDuration("TTS_PAUSE", 500*time.Millisecond),
		AudioDir:      getEnv("AUDIO_DIR", "audio"),
		SpeechWorkers: getEnvInt("SPEECH_WORKERS", 2),
	}

	if cfg.LLMProvider == "" {
		cfg.LLMProvider = detectProvider(cfg)
	}
	if cfg.QuizMaxQuestions < 1 {
		cfg.QuizMaxQuestions = 20
	}
	if cfg.QuizQuestionCount < 1 || cfg.QuizQuestionCount > cfg.QuizMaxQuestions {
		cfg.QuizQuestionCount = min(5, cfg.QuizMaxQuestions)
	}

	return cfg
}

// detectProvider picks a provider from whichever API key is present.
func detectProvider(cfg *Config) string {
	switch {
	case os.Getenv("MOCK_GENERATOR") == "true":
		return "mock"
	case os.Getenv("USE_CLI_GENERATOR") == "true":
		return "cli"
	case cfg.GroqKey != "":
		return "groq"
	case cfg.AnthropicKey != "":
		return "anthropic"
	default:
		return "none"
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("WARNING: %s=%q is not an integer, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("WARNING: %s=%q is not a duration, using %v", key, value, fallback)
		return fallback
	}
	return d
}
