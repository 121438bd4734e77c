package model

import "time"

// InsightKind selects which prompt, validation, and fallback variant the
// pipeline uses for a request.
type InsightKind string

const (
	KindLeaf                InsightKind = "leaf"
	KindGroupSynthesis      InsightKind = "group_synthesis"
	KindOverallSynthesis    InsightKind = "overall_synthesis"
	KindComparisonSynthesis InsightKind = "comparison_synthesis"
)

// Provenance records which tier of the pipeline produced an insight
type Provenance string

const (
	SourceLLM      Provenance = "llm"
	SourceLLMRetry Provenance = "llm_retry"
	SourceFallback Provenance = "fallback"
)

// InsightResult is one generated insight. Fields holds the scalar sections,
// Lists the numbered-list sections; which names are present is fixed per kind.
type InsightResult struct {
	Kind        InsightKind         `json:"kind" bson:"kind"`
	Fields      map[string]string   `json:"fields" bson:"fields"`
	Lists       map[string][]string `json:"lists,omitempty" bson:"lists,omitempty"`
	Source      Provenance          `json:"source" bson:"source"`
	GeneratedAt time.Time           `json:"generatedAt" bson:"generatedAt"`

	// ErrorDetail carries the last attempt's error when Source is fallback
	ErrorDetail string `json:"errorDetail,omitempty" bson:"errorDetail,omitempty"`
}

// Field returns a scalar section, empty string when absent
func (r *InsightResult) Field(name string) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	return r.Fields[name]
}

// List returns a list section, nil when absent
func (r *InsightResult) List(name string) []string {
	if r == nil || r.Lists == nil {
		return nil
	}
	return r.Lists[name]
}

// AssessmentReport is the persisted outcome of one completed assessment
// attempt: every leaf insight plus the group and overall syntheses.
type AssessmentReport struct {
	ToolID    string `json:"toolId" bson:"toolId"`
	StudentID string `json:"studentId" bson:"studentId"`
	Status    string `json:"status" bson:"status"` // "pending", "ready"

	Leaves  map[string]*InsightResult `json:"leaves" bson:"leaves"`   // itemKey -> leaf
	Groups  map[string]*InsightResult `json:"groups" bson:"groups"`   // groupKey -> synthesis
	Overall *InsightResult            `json:"overall" bson:"overall"` // whole-tool synthesis

	Scores *ScoreContext `json:"scores,omitempty" bson:"scores,omitempty"`

	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	ReadyAt   *time.Time `json:"readyAt,omitempty" bson:"readyAt,omitempty"`
}

// ComparisonReport is the outcome of a two-scenario comparison run
type ComparisonReport struct {
	ToolID    string         `json:"toolId" bson:"toolId"`
	StudentID string         `json:"studentId" bson:"studentId"`
	ScenarioA string         `json:"scenarioA" bson:"scenarioA"`
	ScenarioB string         `json:"scenarioB" bson:"scenarioB"`
	Insight   *InsightResult `json:"insight" bson:"insight"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
}
