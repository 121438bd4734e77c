package service

import (
	"fmt"
	"strings"

	"mindpath/internal/model"
)

// maxPromptListItems caps free-form lists carried into synthesis prompts.
// Scores and leaf insights are never truncated; only list-valued fields of
// prior insights (practices, next steps) are capped. Stable by contract.
const maxPromptListItems = 5

// BuildPrompts renders an insight request into the system and user
// instructions for the LLM. Pure function: same request, same prompts.
func BuildPrompts(req InsightRequest) (system, user string) {
	switch req.Kind {
	case model.KindGroupSynthesis:
		return buildGroupPrompts(req)
	case model.KindOverallSynthesis:
		return buildOverallPrompts(req)
	case model.KindComparisonSynthesis:
		return buildComparisonPrompts(req)
	default:
		return buildLeafPrompts(req)
	}
}

func buildLeafPrompts(req InsightRequest) (string, string) {
	tool := req.Context.tool(req.ToolID)
	itemTitle := tool.ItemTitle(req.ItemKey)
	if req.Context != nil && req.Context.ItemTitle != "" {
		itemTitle = req.Context.ItemTitle
	}

	system := fmt.Sprintf(`You are a compassionate financial-psychology coach analyzing one aspect of a student's "%s" assessment.
Respond in plain text using EXACTLY these section markers, each on its own line, in this order:
Pattern:
Insight:
Action:
Root Belief:

Pattern is a short name for what the answers reveal. Insight is 2-4 sentences of warm, specific analysis. Action is one concrete next step. Root Belief is the underlying belief driving the pattern. Never invent facts the student did not report.`, tool.Title)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Assessment item: %s (%s)\n", itemTitle, req.ItemKey)

	if req.Scores != nil {
		if score, ok := req.Scores.ItemScores[req.ItemKey]; ok {
			fmt.Fprintf(&sb, "Item score: %.1f on a -2 to +2 scale (band: %s)\n", score, req.Scores.ItemBand(req.ItemKey))
		}
		if txt := req.Scores.FreeText[req.ItemKey]; txt != "" {
			fmt.Fprintf(&sb, "Student's own words: %q\n", txt)
		}
	}

	sb.WriteString("\nWrite the four sections for this item.")
	return system, sb.String()
}

func buildGroupPrompts(req InsightRequest) (string, string) {
	tool := req.Context.tool(req.ToolID)
	groupTitle := "this area"
	if req.Context != nil && req.Context.Group != nil {
		groupTitle = req.Context.Group.Title
	}

	system := fmt.Sprintf(`You are a financial-psychology coach synthesizing the "%s" area of a student's "%s" assessment from its per-item analyses.
Respond in plain text using EXACTLY these section markers, each on its own line, in this order:
Overview:
Key Pattern:
Core Shift:
Practices:

Overview is 3-5 sentences tying the items together. Key Pattern is a short name for the dominant theme. Core Shift is the perspective change that would help most. Practices is a numbered list (1. ...) of 2-3 concrete practices. Ground everything in the provided analyses; never invent student data.`, groupTitle, tool.Title)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Area: %s\n", groupTitle)

	if req.Scores != nil && req.Context != nil && req.Context.Group != nil {
		if q, ok := req.Scores.GroupQuotients[req.Context.Group.Key]; ok {
			fmt.Fprintf(&sb, "Area quotient: %.0f/100\n", q)
		}
		for _, it := range req.Context.Group.Items {
			if score, ok := req.Scores.ItemScores[it.Key]; ok {
				fmt.Fprintf(&sb, "- %s score: %.1f\n", it.Title, score)
			}
		}
	}

	if req.Context != nil {
		sb.WriteString("\nPer-item analyses:\n")
		for _, leaf := range req.Context.Leaves {
			writeLeafSummary(&sb, leaf)
		}
	}

	sb.WriteString("\nSynthesize the four sections for this area.")
	return system, sb.String()
}

func buildOverallPrompts(req InsightRequest) (string, string) {
	tool := req.Context.tool(req.ToolID)

	system := fmt.Sprintf(`You are a financial-psychology coach writing the top-level synthesis of a student's completed "%s" assessment from its per-area syntheses.
Respond in plain text using EXACTLY these section markers, each on its own line, in this order:
Overview:
Integration:
Core Work:
Next Steps:

Overview summarizes where the student stands. Integration explains how the areas interact. Core Work names the single most important theme to work on. Next Steps is a numbered list (1. ...) of 3-5 ordered actions. Ground everything in the provided syntheses; never invent student data.`, tool.Title)

	var sb strings.Builder
	if req.Scores != nil {
		fmt.Fprintf(&sb, "Overall quotient: %.0f/100 (band: %s)\n", req.Scores.OverallQuotient, model.BandForQuotient(req.Scores.OverallQuotient))
		if req.Context != nil {
			for _, g := range req.Context.GroupSyntheses {
				if q, ok := req.Scores.GroupQuotients[g.GroupKey]; ok {
					fmt.Fprintf(&sb, "- %s quotient: %.0f/100\n", g.Title, q)
				}
			}
		}
	}

	if req.Context != nil {
		sb.WriteString("\nPer-area syntheses:\n")
		for _, g := range req.Context.GroupSyntheses {
			writeGroupSummary(&sb, g)
		}
	}

	sb.WriteString("\nWrite the four sections for the whole assessment.")
	return system, sb.String()
}

func buildComparisonPrompts(req InsightRequest) (string, string) {
	tool := req.Context.tool(req.ToolID)

	system := fmt.Sprintf(`You are a financial-psychology coach comparing two scenarios of a student's "%s" assessment.
Respond in plain text using EXACTLY these section markers, each on its own line, in this order:
Overview:
Key Differences:
Recommendation:

Overview frames the comparison in 3-4 sentences. Key Differences is a numbered list (1. ...) of the most meaningful contrasts. Recommendation states which direction serves the student better and why. Ground everything in the provided scenario data; never invent student data.`, tool.Title)

	var sb strings.Builder
	if req.Context != nil {
		writeScenario(&sb, "Scenario A", req.Context.ScenarioA)
		writeScenario(&sb, "Scenario B", req.Context.ScenarioB)
	}

	sb.WriteString("\nWrite the three sections comparing the scenarios.")
	return system, sb.String()
}

func writeLeafSummary(sb *strings.Builder, leaf LeafRef) {
	fmt.Fprintf(sb, "\n[%s]\n", leaf.Title)
	if leaf.Result == nil {
		return
	}
	for _, name := range []string{FieldPattern, FieldInsight, FieldAction, FieldRootBelief} {
		if v := leaf.Result.Field(name); v != "" {
			fmt.Fprintf(sb, "%s: %s\n", name, v)
		}
	}
}

func writeGroupSummary(sb *strings.Builder, g GroupRef) {
	fmt.Fprintf(sb, "\n[%s]\n", g.Title)
	if g.Result == nil {
		return
	}
	for _, name := range []string{FieldOverview, FieldKeyPattern, FieldCoreShift} {
		if v := g.Result.Field(name); v != "" {
			fmt.Fprintf(sb, "%s: %s\n", name, v)
		}
	}
	for i, p := range g.Result.List(FieldPractices) {
		if i >= maxPromptListItems {
			break
		}
		fmt.Fprintf(sb, "practice %d: %s\n", i+1, p)
	}
}

func writeScenario(sb *strings.Builder, label string, s *Scenario) {
	if s == nil {
		return
	}
	name := s.Label
	if name == "" {
		name = label
	}
	fmt.Fprintf(sb, "\n%s: %s\n", label, name)
	if s.Description != "" {
		fmt.Fprintf(sb, "Description: %s\n", s.Description)
	}
	if s.Scores != nil {
		fmt.Fprintf(sb, "Overall quotient: %.0f/100\n", s.Scores.OverallQuotient)
		for _, key := range sortedKeys(s.Scores.GroupQuotients) {
			fmt.Fprintf(sb, "- %s quotient: %.0f/100\n", key, s.Scores.GroupQuotients[key])
		}
	}
}
