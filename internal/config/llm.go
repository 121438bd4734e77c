package config

import (
	"os"
	"strconv"

	"mindpath/internal/model"
)

// KindConfig is the per-insight-kind generation and validation configuration
type KindConfig struct {
	Model          string  `json:"model"`
	Temperature    float64 `json:"temperature"`
	MaxTokens      int     `json:"maxTokens"`
	RetryBackoffMS int     `json:"retryBackoffMs"`

	// Validation thresholds. Tunable, not load-bearing.
	MinFieldLength     int `json:"minFieldLength"`
	MinNarrativeLength int `json:"minNarrativeLength"`
	MinListLength      int `json:"minListLength"`
}

// LLMConfig holds all LLM-related configuration
type LLMConfig struct {
	APIKey  string `json:"-"` // Never serialize
	BaseURL string `json:"baseUrl"`

	Kinds map[model.InsightKind]KindConfig `json:"kinds"`

	TimeoutMS int `json:"timeoutMs"`
}

// DefaultLLMConfig returns the default LLM configuration. Leaf generation
// runs in the background on every completed item so it uses the fast model;
// syntheses block the student's submission and favor quality.
func DefaultLLMConfig() *LLMConfig {
	return &LLMConfig{
		APIKey:  os.Getenv("LLM_API_KEY"),
		BaseURL: os.Getenv("LLM_BASE_URL"),
		Kinds: map[model.InsightKind]KindConfig{
			model.KindLeaf: {
				Model:              getEnvOrDefault("LLM_MODEL_LEAF", "gpt-4o-mini"),
				Temperature:        0.7,
				MaxTokens:          600,
				RetryBackoffMS:     getEnvIntOrDefault("LLM_RETRY_BACKOFF_MS", 2000),
				MinFieldLength:     10,
				MinNarrativeLength: 50,
				MinListLength:      1,
			},
			model.KindGroupSynthesis: {
				Model:              getEnvOrDefault("LLM_MODEL_GROUP", "gpt-4o"),
				Temperature:        0.6,
				MaxTokens:          900,
				RetryBackoffMS:     getEnvIntOrDefault("LLM_RETRY_BACKOFF_MS", 2000),
				MinFieldLength:     10,
				MinNarrativeLength: 50,
				MinListLength:      1,
			},
			model.KindOverallSynthesis: {
				Model:              getEnvOrDefault("LLM_MODEL_OVERALL", "gpt-4o"),
				Temperature:        0.6,
				MaxTokens:          1200,
				RetryBackoffMS:     getEnvIntOrDefault("LLM_RETRY_BACKOFF_MS", 2000),
				MinFieldLength:     10,
				MinNarrativeLength: 50,
				MinListLength:      2,
			},
			model.KindComparisonSynthesis: {
				Model:              getEnvOrDefault("LLM_MODEL_COMPARISON", "gpt-4o"),
				Temperature:        0.5,
				MaxTokens:          1200,
				RetryBackoffMS:     getEnvIntOrDefault("LLM_RETRY_BACKOFF_MS", 2000),
				MinFieldLength:     10,
				MinNarrativeLength: 50,
				MinListLength:      2,
			},
		},
		TimeoutMS: getEnvIntOrDefault("LLM_TIMEOUT_MS", 15000), // per-request HTTP timeout
	}
}

// IsEnabled returns true if the LLM API is configured
func (c *LLMConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Kind returns the configuration for an insight kind. Unknown kinds get the
// leaf defaults so a miswired caller still generates something sane.
func (c *LLMConfig) Kind(kind model.InsightKind) KindConfig {
	if kc, ok := c.Kinds[kind]; ok {
		return kc
	}
	return c.Kinds[model.KindLeaf]
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
