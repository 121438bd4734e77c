package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mindpath/internal/llm"
	"mindpath/internal/model"
)

const validGroupReply = `Overview:
These items point to a shared tension between wanting stability and distrusting the student's own ability to create it.

Key Pattern:
guarded optimism

Core Shift:
From treating every money decision as a test of worth toward treating it as practice that is allowed to be imperfect.

Practices:
1. Review one recurring expense each week without judging it.
2. Name the feeling before making any purchase over a set amount.`

const validOverallReply = `Overview:
The assessment shows a student with real strengths in planning who undercuts them with harsh self-judgment about money.

Integration:
The scarcity area feeds the self-worth area: tight spending rules become evidence of inadequacy whenever they are broken.

Core Work:
Separating financial decisions from self-evaluation is the single change that would ease every area at once.

Next Steps:
1. Pick the one practice from the area syntheses that felt most doable.
2. Schedule a weekly fifteen-minute money review.
3. Revisit the assessment after six weeks to compare bands.`

func synthLeaf(pattern string) *model.InsightResult {
	return &model.InsightResult{
		Kind:   model.KindLeaf,
		Source: model.SourceLLM,
		Fields: map[string]string{
			FieldPattern:    pattern,
			FieldInsight:    "a sufficiently long narrative describing how this pattern shapes everyday money choices.",
			FieldAction:     "one small action to try",
			FieldRootBelief: "a quiet belief about safety",
		},
	}
}

func newTestSynthesizer(gw *llm.MockGateway) *HierarchicalSynthesizer {
	pipeline := NewTieredInsightPipeline(gw, fastConfig(), nil)
	return NewHierarchicalSynthesizer(pipeline, model.DefaultCatalog())
}

func TestSynthesizeGroupToleratesMissingLeaves(t *testing.T) {
	gw := llm.NewMockGateway(llm.MockReply{Text: validGroupReply})
	s := newTestSynthesizer(gw)

	// scarcity has four items; only two leaves made it to the cache
	leaves := map[string]*model.InsightResult{
		"belief":  synthLeaf("hoarding as safety"),
		"feeling": synthLeaf("spending guilt"),
	}

	result := s.SynthesizeGroup(context.Background(), "money-beliefs", "S1", "scarcity", leaves, nil)

	require.Equal(t, model.SourceLLM, result.Source)
	require.Equal(t, model.KindGroupSynthesis, result.Kind)

	user := gw.Request(0).User
	require.Contains(t, user, "hoarding as safety")
	require.Contains(t, user, "spending guilt")
	require.NotContains(t, user, "Spending Behavior")
	require.NotContains(t, user, "Life Consequence")
}

func TestSynthesizeGroupWalksItemsInCatalogOrder(t *testing.T) {
	gw := llm.NewMockGateway(llm.MockReply{Text: validGroupReply})
	s := newTestSynthesizer(gw)

	leaves := map[string]*model.InsightResult{
		"consequence": synthLeaf("avoidance"),
		"belief":      synthLeaf("scarcity lens"),
		"behavior":    synthLeaf("impulse control"),
	}

	s.SynthesizeGroup(context.Background(), "money-beliefs", "S1", "scarcity", leaves, nil)

	user := gw.Request(0).User
	// belief, behavior, consequence is the definition order regardless of map order
	require.Less(t, strings.Index(user, "scarcity lens"), strings.Index(user, "impulse control"))
	require.Less(t, strings.Index(user, "impulse control"), strings.Index(user, "avoidance"))
}

func TestSynthesizeGroupWithNoLeavesStillSucceeds(t *testing.T) {
	gw := llm.NewMockGateway(llm.MockReply{Text: validGroupReply})
	s := newTestSynthesizer(gw)

	result := s.SynthesizeGroup(context.Background(), "money-beliefs", "S1", "scarcity", nil, nil)

	require.Equal(t, model.SourceLLM, result.Source)
	require.NotEmpty(t, result.Field(FieldOverview))
}

func TestSynthesizeOverallWalksGroupsInCatalogOrder(t *testing.T) {
	gw := llm.NewMockGateway(llm.MockReply{Text: validOverallReply})
	s := newTestSynthesizer(gw)

	groups := map[string]*model.InsightResult{
		"selfworth": {Kind: model.KindGroupSynthesis, Fields: map[string]string{FieldOverview: "self-worth summary text"}},
		"scarcity":  {Kind: model.KindGroupSynthesis, Fields: map[string]string{FieldOverview: "scarcity summary text"}},
	}

	result := s.SynthesizeOverall(context.Background(), "money-beliefs", "S1", groups, &model.ScoreContext{
		OverallQuotient: 55,
		GroupQuotients:  map[string]float64{"scarcity": 40, "selfworth": 70},
	})

	require.Equal(t, model.SourceLLM, result.Source)
	require.Equal(t, model.KindOverallSynthesis, result.Kind)

	user := gw.Request(0).User
	require.Less(t, strings.Index(user, "scarcity summary text"), strings.Index(user, "self-worth summary text"))
	// security has no synthesis and must be absent from the prompt
	require.NotContains(t, user, "Security & Planning")
}

func TestSynthesizeComparisonCarriesBothScenarios(t *testing.T) {
	gw := llm.NewMockGateway(llm.MockReply{Err: &llm.TransportError{Err: context.DeadlineExceeded}})
	s := newTestSynthesizer(gw)

	a := Scenario{Label: "Before coaching", Scores: &model.ScoreContext{OverallQuotient: 35}}
	b := Scenario{Label: "After coaching", Scores: &model.ScoreContext{OverallQuotient: 72}}

	result := s.SynthesizeComparison(context.Background(), "money-beliefs", "S1", a, b)

	// Gateway down on both attempts, so the comparison comes from the fallback
	require.Equal(t, model.SourceFallback, result.Source)
	require.Equal(t, model.KindComparisonSynthesis, result.Kind)

	user := gw.Request(0).User
	require.Contains(t, user, "Before coaching")
	require.Contains(t, user, "After coaching")
}

func TestSynthesizeUnknownToolFallsBackToStub(t *testing.T) {
	gw := llm.NewMockGateway(llm.MockReply{Text: validGroupReply})
	s := newTestSynthesizer(gw)

	result := s.SynthesizeGroup(context.Background(), "no-such-tool", "S1", "somegroup", nil, nil)

	require.Equal(t, model.SourceLLM, result.Source)
	require.Contains(t, gw.Request(0).System, "no-such-tool")
}
