package service

import "mindpath/internal/model"

// Field names shared by parser, validator, fallback, and report rendering
const (
	FieldPattern    = "pattern"
	FieldInsight    = "insight"
	FieldAction     = "action"
	FieldRootBelief = "rootBelief"

	FieldOverview   = "overview"
	FieldKeyPattern = "keyPattern"
	FieldCoreShift  = "coreShift"
	FieldPractices  = "practices"

	FieldIntegration = "integration"
	FieldCoreWork    = "coreWork"
	FieldNextSteps   = "nextSteps"

	FieldKeyDifferences = "keyDifferences"
	FieldRecommendation = "recommendation"
)

// FieldSpec describes one required section of an insight kind
type FieldSpec struct {
	Name      string
	Marker    string // section marker in the LLM's plain-text reply
	List      bool   // numbered-list section
	Narrative bool   // held to the longer minimum length
}

// kindSpecs is the single dispatch table for all per-kind behavior. Every
// kind-dependent decision (parsing, validation, fallback shape) reads from
// here rather than branching on the kind inline.
var kindSpecs = map[model.InsightKind][]FieldSpec{
	model.KindLeaf: {
		{Name: FieldPattern, Marker: "Pattern:"},
		{Name: FieldInsight, Marker: "Insight:", Narrative: true},
		{Name: FieldAction, Marker: "Action:"},
		{Name: FieldRootBelief, Marker: "Root Belief:"},
	},
	model.KindGroupSynthesis: {
		{Name: FieldOverview, Marker: "Overview:", Narrative: true},
		{Name: FieldKeyPattern, Marker: "Key Pattern:"},
		{Name: FieldCoreShift, Marker: "Core Shift:", Narrative: true},
		{Name: FieldPractices, Marker: "Practices:", List: true},
	},
	model.KindOverallSynthesis: {
		{Name: FieldOverview, Marker: "Overview:", Narrative: true},
		{Name: FieldIntegration, Marker: "Integration:", Narrative: true},
		{Name: FieldCoreWork, Marker: "Core Work:", Narrative: true},
		{Name: FieldNextSteps, Marker: "Next Steps:", List: true},
	},
	model.KindComparisonSynthesis: {
		{Name: FieldOverview, Marker: "Overview:", Narrative: true},
		{Name: FieldKeyDifferences, Marker: "Key Differences:", List: true},
		{Name: FieldRecommendation, Marker: "Recommendation:", Narrative: true},
	},
}

// fieldSpecs returns the required sections for a kind. Unknown kinds get the
// leaf layout so the pipeline stays total even for a miswired request.
func fieldSpecs(kind model.InsightKind) []FieldSpec {
	if specs, ok := kindSpecs[kind]; ok {
		return specs
	}
	return kindSpecs[model.KindLeaf]
}

// markersFor returns every known marker of a kind (parser boundaries)
func markersFor(kind model.InsightKind) []string {
	specs := fieldSpecs(kind)
	markers := make([]string, 0, len(specs))
	for _, s := range specs {
		markers = append(markers, s.Marker)
	}
	return markers
}
