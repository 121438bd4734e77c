package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mindpath/internal/config"
	"mindpath/internal/model"
)

func testKindConfig() config.KindConfig {
	return config.KindConfig{
		MinFieldLength:     10,
		MinNarrativeLength: 50,
		MinListLength:      2,
	}
}

func validLeaf() *model.InsightResult {
	return &model.InsightResult{
		Kind: model.KindLeaf,
		Fields: map[string]string{
			FieldPattern:    "a named spending pattern",
			FieldInsight:    strings.Repeat("a sufficiently long narrative insight ", 3),
			FieldAction:     "one concrete action to take",
			FieldRootBelief: "money equals safety",
		},
	}
}

func TestValidateAcceptsCompleteLeaf(t *testing.T) {
	cfg := testKindConfig()
	require.True(t, ValidateInsight(validLeaf(), model.KindLeaf, cfg))
}

func TestValidateRejectsShortField(t *testing.T) {
	cfg := testKindConfig()
	leaf := validLeaf()
	leaf.Fields[FieldPattern] = "short"
	require.False(t, ValidateInsight(leaf, model.KindLeaf, cfg))
}

func TestValidateRejectsShortNarrative(t *testing.T) {
	cfg := testKindConfig()
	leaf := validLeaf()
	leaf.Fields[FieldInsight] = "long enough for a short field but not narrative"
	require.False(t, ValidateInsight(leaf, model.KindLeaf, cfg))
}

func TestValidateRejectsWhitespaceOnlyField(t *testing.T) {
	cfg := testKindConfig()
	leaf := validLeaf()
	leaf.Fields[FieldAction] = strings.Repeat(" ", 40)
	require.False(t, ValidateInsight(leaf, model.KindLeaf, cfg))
}

func TestValidateEnforcesListCardinality(t *testing.T) {
	cfg := testKindConfig()
	narrative := strings.Repeat("a sufficiently long narrative text ", 3)
	overall := &model.InsightResult{
		Kind: model.KindOverallSynthesis,
		Fields: map[string]string{
			FieldOverview:    narrative,
			FieldIntegration: narrative,
			FieldCoreWork:    narrative,
		},
		Lists: map[string][]string{
			FieldNextSteps: {"only one step"},
		},
	}
	require.False(t, ValidateInsight(overall, model.KindOverallSynthesis, cfg))

	overall.Lists[FieldNextSteps] = append(overall.Lists[FieldNextSteps], "a second step")
	require.True(t, ValidateInsight(overall, model.KindOverallSynthesis, cfg))
}

func TestValidateRejectsNil(t *testing.T) {
	require.False(t, ValidateInsight(nil, model.KindLeaf, testKindConfig()))
}
