package service

import (
	"context"

	"mindpath/internal/model"
)

// HierarchicalSynthesizer composes already-generated insights into synthesis
// requests: leaves into a group synthesis, group syntheses into the overall
// one, two scenarios into a comparison. All generation goes through the same
// tiered pipeline; this component only assembles context, always in the
// catalog's definition order, never the insertion order of a map.
type HierarchicalSynthesizer struct {
	pipeline *TieredInsightPipeline
	catalog  *model.ToolCatalog
}

// NewHierarchicalSynthesizer creates a synthesizer over the given catalog
func NewHierarchicalSynthesizer(pipeline *TieredInsightPipeline, catalog *model.ToolCatalog) *HierarchicalSynthesizer {
	return &HierarchicalSynthesizer{pipeline: pipeline, catalog: catalog}
}

// SynthesizeGroup builds one group's synthesis from its cached leaf
// insights. Missing leaves are simply omitted from the context; the request
// still succeeds through the pipeline's usual tiers.
func (s *HierarchicalSynthesizer) SynthesizeGroup(ctx context.Context, toolID, studentID, groupKey string, leaves map[string]*model.InsightResult, scores *model.ScoreContext) *model.InsightResult {
	tool := s.toolOrStub(toolID)
	group := tool.Group(groupKey)
	if group == nil {
		group = &model.GroupDef{Key: groupKey, Title: groupKey}
	}

	var refs []LeafRef
	for _, item := range group.Items {
		leaf, ok := leaves[item.Key]
		if !ok || leaf == nil {
			continue
		}
		refs = append(refs, LeafRef{ItemKey: item.Key, Title: item.Title, Result: leaf})
	}

	return s.pipeline.Generate(ctx, InsightRequest{
		Kind:      model.KindGroupSynthesis,
		ToolID:    toolID,
		StudentID: studentID,
		Scores:    scores,
		Context: &PromptContext{
			Tool:   tool,
			Group:  group,
			Leaves: refs,
		},
	})
}

// SynthesizeOverall builds the top-level synthesis from the group syntheses
func (s *HierarchicalSynthesizer) SynthesizeOverall(ctx context.Context, toolID, studentID string, groups map[string]*model.InsightResult, scores *model.ScoreContext) *model.InsightResult {
	tool := s.toolOrStub(toolID)

	var refs []GroupRef
	for _, g := range tool.Groups {
		syn, ok := groups[g.Key]
		if !ok || syn == nil {
			continue
		}
		refs = append(refs, GroupRef{GroupKey: g.Key, Title: g.Title, Result: syn})
	}

	return s.pipeline.Generate(ctx, InsightRequest{
		Kind:      model.KindOverallSynthesis,
		ToolID:    toolID,
		StudentID: studentID,
		Scores:    scores,
		Context: &PromptContext{
			Tool:           tool,
			GroupSyntheses: refs,
		},
	})
}

// SynthesizeComparison builds the comparison insight for two scenarios
func (s *HierarchicalSynthesizer) SynthesizeComparison(ctx context.Context, toolID, studentID string, a, b Scenario) *model.InsightResult {
	tool := s.toolOrStub(toolID)

	return s.pipeline.Generate(ctx, InsightRequest{
		Kind:      model.KindComparisonSynthesis,
		ToolID:    toolID,
		StudentID: studentID,
		Context: &PromptContext{
			Tool:      tool,
			ScenarioA: &a,
			ScenarioB: &b,
		},
	})
}

func (s *HierarchicalSynthesizer) toolOrStub(toolID string) *model.ToolDef {
	if s.catalog != nil {
		if t := s.catalog.Tool(toolID); t != nil {
			return t
		}
	}
	return &model.ToolDef{ID: toolID, Title: toolID}
}
