// Package config loads the process configuration once at startup. Values
// are threaded into constructors explicitly; nothing reads the environment
// mid-run, so backend selection is deterministic and testable per run.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// TTS backend names.
const (
	TTSBackendOpenAI = "openai"
	TTSBackendBark   = "bark"
)

// Config holds everything the service needs at construction time.
type Config struct {
	ListenAddr  string
	ArtifactDir string
	PersonaFile string

	// TTSBackend selects the synthesis backend, once per process.
	TTSBackend    string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string
	BarkServerURL string
	FFmpegPath    string

	// Request bounds enforced at the HTTP boundary.
	MaxRounds       int
	MaxParticipants int
	MaxTopicLength  int

	// LLMMaxTokens caps each generated utterance (0 = model default).
	LLMMaxTokens int
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		ArtifactDir: getEnv("ARTIFACT_DIR", "data/audio"),
		PersonaFile: getEnv("PERSONA_FILE", "data/personas.json"),

		TTSBackend:    getEnv("TTS_BACKEND", TTSBackendOpenAI),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		BarkServerURL: getEnv("BARK_SERVER_URL", "http://localhost:5005"),
		FFmpegPath:    getEnv("FFMPEG_PATH", "ffmpeg"),

		MaxRounds:       getEnvInt("MAX_ROUNDS", 5),
		MaxParticipants: getEnvInt("MAX_PARTICIPANTS", 5),
		MaxTopicLength:  getEnvInt("MAX_TOPIC_LENGTH", 500),

		LLMMaxTokens: getEnvInt("LLM_MAX_TOKENS", 150),
	}

	switch cfg.TTSBackend {
	case TTSBackendOpenAI, TTSBackendBark:
	default:
		return nil, fmt.Errorf("unsupported TTS backend %q (want %q or %q)",
			cfg.TTSBackend, TTSBackendOpenAI, TTSBackendBark)
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}
