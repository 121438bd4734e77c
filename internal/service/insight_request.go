package service

import "mindpath/internal/model"

// InsightRequest is one unit of work for the tiered pipeline
type InsightRequest struct {
	Kind      model.InsightKind
	ToolID    string
	StudentID string

	// ItemKey is set for leaf requests only
	ItemKey string

	Scores *model.ScoreContext

	// Context carries the already-generated material a synthesis composes
	Context *PromptContext
}

// LeafRef pairs an item with its generated leaf insight, in catalog order
type LeafRef struct {
	ItemKey string
	Title   string
	Result  *model.InsightResult
}

// GroupRef pairs a group with its synthesis, in catalog order
type GroupRef struct {
	GroupKey string
	Title    string
	Result   *model.InsightResult
}

// Scenario is one side of a comparison run
type Scenario struct {
	Label       string
	Description string
	Scores      *model.ScoreContext
}

// PromptContext is the kind-specific extra context handed to the prompt
// builder and the fallback generator. Only the fields relevant to the
// request's kind are populated.
type PromptContext struct {
	Tool *model.ToolDef

	// Leaf requests
	ItemTitle string

	// Group synthesis
	Group  *model.GroupDef
	Leaves []LeafRef

	// Overall synthesis
	GroupSyntheses []GroupRef

	// Comparison synthesis
	ScenarioA *Scenario
	ScenarioB *Scenario
}

// tool returns the tool definition, synthesizing a bare one when the caller
// passed none so prompt and fallback code never nil-checks.
func (c *PromptContext) tool(toolID string) *model.ToolDef {
	if c != nil && c.Tool != nil {
		return c.Tool
	}
	return &model.ToolDef{ID: toolID, Title: toolID}
}
