package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Search index connection
	ElasticURL      string
	ElasticUser     string
	ElasticPassword string

	// Index names
	SummarizationIndex string
	DiagnosesIndex     string

	// Auth
	APIKey string

	// Summarization
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	PromptFile    string

	// Anonymizer
	SectionTitles []string

	// Upload limits
	MaxUploadBytes int64

	// LLM latency stats window
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		ElasticURL:      envOr("ELASTIC_URL", "http://localhost:9200"),
		ElasticUser:     envOr("ELASTIC_USER", "elastic"),
		ElasticPassword: os.Getenv("ELASTIC_PASSWORD"),

		SummarizationIndex: envOr("ELASTIC_SUMMARIZATION_INDEX", "summarization"),
		DiagnosesIndex:     envOr("ELASTIC_DIAGNOSES_INDEX", "diagnoses"),

		APIKey: os.Getenv("CLINSUM_API_KEY"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		PromptFile:    envOr("PROMPT_FILE", "prompts.yaml"),

		SectionTitles: envList("ANONYMIZER_SECTIONS"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		StatsWindow: envDuration("LLM_STATS_WINDOW", 1*time.Hour),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("CLINSUM_API_KEY is required")
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.ElasticPassword == "" {
		return fmt.Errorf("ELASTIC_PASSWORD is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList parses a comma-separated list, dropping empty entries. Returns nil
// when the variable is unset so callers can fall back to their defaults.
func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
