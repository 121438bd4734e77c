package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mindpath/internal/model"
)

func TestParseLeafSections(t *testing.T) {
	raw := "Pattern:\nX\n\nInsight:\nY\n\nAction:\nZ\n\nRoot Belief:\nW"

	result := ParseInsightResponse(raw, model.KindLeaf)

	require.Equal(t, "X", result.Field(FieldPattern))
	require.Equal(t, "Y", result.Field(FieldInsight))
	require.Equal(t, "Z", result.Field(FieldAction))
	require.Equal(t, "W", result.Field(FieldRootBelief))
}

func TestParseStripsMarkdownEmphasis(t *testing.T) {
	raw := "**Pattern:** *scarcity loop*\n\n**Insight:** money _feels_ unsafe\n\nAction: breathe\n\nRoot Belief: never enough"

	result := ParseInsightResponse(raw, model.KindLeaf)

	require.Equal(t, "scarcity loop", result.Field(FieldPattern))
	require.Equal(t, "money feels unsafe", result.Field(FieldInsight))
}

func TestParseMissingMarkerYieldsEmptyField(t *testing.T) {
	raw := "Pattern: something\n\nAction: do something"

	result := ParseInsightResponse(raw, model.KindLeaf)

	require.Equal(t, "something", result.Field(FieldPattern))
	require.Equal(t, "", result.Field(FieldInsight))
	require.Equal(t, "", result.Field(FieldRootBelief))
}

func TestParseNumberedList(t *testing.T) {
	raw := strings.Join([]string{
		"Overview: fine",
		"Integration: fine",
		"Core Work: fine",
		"Next Steps:",
		"1. First step",
		"2) Second step",
		"not a list line",
		"3. Third step",
	}, "\n")

	result := ParseInsightResponse(raw, model.KindOverallSynthesis)

	require.Equal(t, []string{"First step", "Second step", "Third step"}, result.List(FieldNextSteps))
}

func TestParseIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"no markers at all",
		"Pattern:",
		"Pattern:Pattern:Pattern:",
		"***__**",
		strings.Repeat("Insight: nested Insight: again ", 50),
		"Next Steps:\n1.\n2.   \n",
	}

	for _, in := range inputs {
		for _, kind := range []model.InsightKind{model.KindLeaf, model.KindGroupSynthesis, model.KindOverallSynthesis, model.KindComparisonSynthesis, model.InsightKind("bogus")} {
			result := ParseInsightResponse(in, kind)
			require.NotNil(t, result)
			require.NotNil(t, result.Fields)
		}
	}
}

func TestParseSectionTerminatedByNextMarker(t *testing.T) {
	raw := "Insight: the middle part Pattern: late pattern"

	result := ParseInsightResponse(raw, model.KindLeaf)

	require.Equal(t, "the middle part", result.Field(FieldInsight))
	require.Equal(t, "late pattern", result.Field(FieldPattern))
}
