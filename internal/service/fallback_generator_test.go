package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mindpath/internal/config"
	"mindpath/internal/model"
)

func leafRequest(itemScore float64) InsightRequest {
	tool := model.DefaultCatalog().Tool("money-beliefs")
	return InsightRequest{
		Kind:      model.KindLeaf,
		ToolID:    tool.ID,
		StudentID: "S1",
		ItemKey:   "belief",
		Scores: &model.ScoreContext{
			ItemScores: map[string]float64{"belief": itemScore},
		},
		Context: &PromptContext{Tool: tool, ItemTitle: "Core Belief"},
	}
}

func TestFallbackIsDeterministic(t *testing.T) {
	req := leafRequest(-2)

	a := GenerateFallback(req)
	b := GenerateFallback(req)

	require.Equal(t, a.Fields, b.Fields)
	require.Equal(t, a.Lists, b.Lists)
	require.Equal(t, model.SourceFallback, a.Source)
}

func TestFallbackDiffersByScoreBand(t *testing.T) {
	problematic := GenerateFallback(leafRequest(-2))
	healthy := GenerateFallback(leafRequest(2))

	require.NotEqual(t, problematic.Field(FieldInsight), healthy.Field(FieldInsight))
	require.NotEqual(t, problematic.Field(FieldPattern), healthy.Field(FieldPattern))
	require.Contains(t, problematic.Field(FieldPattern), "strain")
}

func TestFallbackPopulatesEveryRequiredFieldForEveryKind(t *testing.T) {
	llmCfg := config.DefaultLLMConfig()
	tool := model.DefaultCatalog().Tool("money-beliefs")
	group := tool.Group("scarcity")

	requests := []InsightRequest{
		leafRequest(0),
		{
			Kind:   model.KindGroupSynthesis,
			ToolID: tool.ID,
			Scores: &model.ScoreContext{GroupQuotients: map[string]float64{"scarcity": 30}},
			Context: &PromptContext{
				Tool:  tool,
				Group: group,
			},
		},
		{
			Kind:    model.KindOverallSynthesis,
			ToolID:  tool.ID,
			Scores:  &model.ScoreContext{OverallQuotient: 85},
			Context: &PromptContext{Tool: tool},
		},
		{
			Kind:   model.KindComparisonSynthesis,
			ToolID: tool.ID,
			Context: &PromptContext{
				Tool:      tool,
				ScenarioA: &Scenario{Label: "Stay", Scores: &model.ScoreContext{OverallQuotient: 40}},
				ScenarioB: &Scenario{Label: "Move", Scores: &model.ScoreContext{OverallQuotient: 75}},
			},
		},
	}

	for _, req := range requests {
		result := GenerateFallback(req)
		require.True(t, ValidateInsight(result, req.Kind, llmCfg.Kind(req.Kind)),
			"fallback for kind %s must satisfy its own validator", req.Kind)
		require.Equal(t, model.SourceFallback, result.Source)
		require.False(t, result.GeneratedAt.IsZero())
	}
}

// The fallback must keep its guarantee even for degenerate requests: no
// scores, no context, unknown tool.
func TestFallbackSurvivesEmptyRequest(t *testing.T) {
	llmCfg := config.DefaultLLMConfig()

	for _, kind := range []model.InsightKind{model.KindLeaf, model.KindGroupSynthesis, model.KindOverallSynthesis, model.KindComparisonSynthesis} {
		result := GenerateFallback(InsightRequest{Kind: kind, ToolID: "missing-tool"})
		require.True(t, ValidateInsight(result, kind, llmCfg.Kind(kind)),
			"fallback for kind %s must survive an empty request", kind)
	}
}

func TestFallbackComparisonNamesHigherScenario(t *testing.T) {
	req := InsightRequest{
		Kind:   model.KindComparisonSynthesis,
		ToolID: "money-beliefs",
		Context: &PromptContext{
			ScenarioA: &Scenario{Label: "Keep the job", Scores: &model.ScoreContext{OverallQuotient: 35}},
			ScenarioB: &Scenario{Label: "Start the business", Scores: &model.ScoreContext{OverallQuotient: 72}},
		},
	}

	result := GenerateFallback(req)
	require.Contains(t, result.Field(FieldRecommendation), "Start the business")
}
