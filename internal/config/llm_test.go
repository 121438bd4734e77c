package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mindpath/internal/model"
)

func TestDefaultLLMConfigCoversEveryKind(t *testing.T) {
	cfg := DefaultLLMConfig()

	for _, kind := range []model.InsightKind{
		model.KindLeaf,
		model.KindGroupSynthesis,
		model.KindOverallSynthesis,
		model.KindComparisonSynthesis,
	} {
		kc, ok := cfg.Kinds[kind]
		require.True(t, ok, "missing config for kind %s", kind)
		require.NotEmpty(t, kc.Model)
		require.Greater(t, kc.MaxTokens, 0)
		require.Greater(t, kc.RetryBackoffMS, 0)
		require.GreaterOrEqual(t, kc.Temperature, 0.0)
		require.LessOrEqual(t, kc.Temperature, 1.0)
		require.Greater(t, kc.MinNarrativeLength, kc.MinFieldLength)
	}
}

func TestKindFallsBackToLeafDefaults(t *testing.T) {
	cfg := DefaultLLMConfig()

	kc := cfg.Kind(model.InsightKind("bogus"))
	require.Equal(t, cfg.Kinds[model.KindLeaf], kc)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LLM_MODEL_LEAF", "custom-model")
	t.Setenv("LLM_RETRY_BACKOFF_MS", "500")
	t.Setenv("LLM_API_KEY", "sk-test")

	cfg := DefaultLLMConfig()
	require.Equal(t, "custom-model", cfg.Kinds[model.KindLeaf].Model)
	require.Equal(t, 500, cfg.Kinds[model.KindLeaf].RetryBackoffMS)
	require.True(t, cfg.IsEnabled())
}

func TestIsEnabledWithoutKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")

	cfg := DefaultLLMConfig()
	require.False(t, cfg.IsEnabled())
}
