package service

import (
	"fmt"
	"time"

	"mindpath/internal/model"
)

// GenerateFallback synthesizes a complete insight for a request with no
// network call. Deterministic for identical inputs (timestamp aside) and
// guaranteed to populate every required field of the kind: this is the
// backstop the pipeline's never-empty contract rests on.
func GenerateFallback(req InsightRequest) *model.InsightResult {
	var result *model.InsightResult
	switch req.Kind {
	case model.KindGroupSynthesis:
		result = fallbackGroup(req)
	case model.KindOverallSynthesis:
		result = fallbackOverall(req)
	case model.KindComparisonSynthesis:
		result = fallbackComparison(req)
	default:
		result = fallbackLeaf(req)
	}

	result.Kind = req.Kind
	result.Source = model.SourceFallback
	result.GeneratedAt = time.Now()
	return result
}

func fallbackLeaf(req InsightRequest) *model.InsightResult {
	tool := req.Context.tool(req.ToolID)
	title := tool.ItemTitle(req.ItemKey)
	band := req.Scores.ItemBand(req.ItemKey)

	fields := map[string]string{}
	switch band {
	case model.BandProblematic:
		fields[FieldPattern] = fmt.Sprintf("Significant strain around %s", title)
		fields[FieldInsight] = fmt.Sprintf("Your answers about %s point to a pattern that is currently working against you and likely costing you real peace of mind. Patterns this strong usually formed early and run on autopilot, which also means that naming them, as you have just done, is the first genuine step toward loosening their grip.", title)
		fields[FieldAction] = fmt.Sprintf("This week, write down one concrete moment when the %s pattern showed up, and what it cost you.", title)
		fields[FieldRootBelief] = "Something here feels scarce or unsafe, and acting from that fear feels like protection."
	case model.BandHealthy:
		fields[FieldPattern] = fmt.Sprintf("Solid footing in %s", title)
		fields[FieldInsight] = fmt.Sprintf("Your answers about %s show a pattern that is serving you well. The habits and perspective you bring here are an asset worth recognizing explicitly, because strengths you can name are strengths you can lean on when other areas feel harder.", title)
		fields[FieldAction] = fmt.Sprintf("Notice one way your strength in %s could support an area that feels less settled.", title)
		fields[FieldRootBelief] = "You trust yourself here, and that trust shows up in consistent choices."
	default:
		fields[FieldPattern] = fmt.Sprintf("Mixed signals around %s", title)
		fields[FieldInsight] = fmt.Sprintf("Your answers about %s show both supportive habits and moments where an older, less helpful pattern takes over. This middle ground is actually a productive place to work from: the healthier pattern already exists, it just needs more deliberate room to run.", title)
		fields[FieldAction] = fmt.Sprintf("Pick one recurring situation involving %s and decide in advance how you want to respond next time.", title)
		fields[FieldRootBelief] = "Part of you already knows a better way, and part of you still reaches for the familiar one."
	}

	return &model.InsightResult{Fields: fields}
}

func fallbackGroup(req InsightRequest) *model.InsightResult {
	groupTitle := "this area"
	var itemKeys []string
	groupKey := ""
	if req.Context != nil && req.Context.Group != nil {
		groupTitle = req.Context.Group.Title
		itemKeys = req.Context.Group.ItemKeys()
		groupKey = req.Context.Group.Key
	}
	band := req.Scores.GroupBand(groupKey, itemKeys)

	fields := map[string]string{}
	var practices []string
	switch band {
	case model.BandProblematic:
		fields[FieldOverview] = fmt.Sprintf("Taken together, your answers in %s describe an area under real pressure right now. Several items point in the same direction, which suggests a connected pattern rather than isolated habits. That coherence is useful: working on any one item here tends to ease the others as well.", groupTitle)
		fields[FieldKeyPattern] = fmt.Sprintf("%s under pressure", groupTitle)
		fields[FieldCoreShift] = fmt.Sprintf("The shift that would help most in %s is moving from reacting to these situations as they happen toward meeting them with a small, prepared response you chose in advance.", groupTitle)
		practices = []string{
			fmt.Sprintf("Once a day, pause before a decision touching %s and name what you are feeling first.", groupTitle),
			"Share one of these patterns with someone you trust and ask what they observe.",
		}
	case model.BandHealthy:
		fields[FieldOverview] = fmt.Sprintf("Your answers in %s describe an area that is genuinely working for you. The items reinforce each other, which is what a stable, healthy pattern looks like from the inside. This area can serve as a template: whatever you are doing here is worth studying and borrowing.", groupTitle)
		fields[FieldKeyPattern] = fmt.Sprintf("%s as a strength", groupTitle)
		fields[FieldCoreShift] = fmt.Sprintf("The opportunity in %s is less about fixing and more about transfer: noticing what makes this area work and applying the same approach where things feel harder.", groupTitle)
		practices = []string{
			fmt.Sprintf("Write down the three habits that keep %s working well for you.", groupTitle),
			"Choose one of those habits and apply it to your most strained area this month.",
		}
	default:
		fields[FieldOverview] = fmt.Sprintf("Your answers in %s are mixed: some items show real stability while others carry tension. Areas like this respond quickly to attention because the foundation is already partly built. The work is consolidation rather than construction.", groupTitle)
		fields[FieldKeyPattern] = fmt.Sprintf("%s in transition", groupTitle)
		fields[FieldCoreShift] = fmt.Sprintf("The most useful shift in %s is consistency: letting the choices you already make on your best days become the default rather than the exception.", groupTitle)
		practices = []string{
			fmt.Sprintf("Identify your strongest item within %s and your weakest, and note what differs between them.", groupTitle),
			"For two weeks, track the weakest item daily with a one-line note.",
		}
	}

	return &model.InsightResult{
		Fields: fields,
		Lists:  map[string][]string{FieldPractices: practices},
	}
}

func fallbackOverall(req InsightRequest) *model.InsightResult {
	tool := req.Context.tool(req.ToolID)
	overall := 50.0
	if req.Scores != nil {
		overall = req.Scores.OverallQuotient
	}
	band := model.BandForQuotient(overall)

	fields := map[string]string{}
	var steps []string
	switch band {
	case model.BandProblematic:
		fields[FieldOverview] = fmt.Sprintf("Your overall %s result (%.0f/100) reflects a period where several areas are under strain at once. That can feel heavy, but it also means the areas are connected, and progress in one will be felt in the others. Completing this assessment honestly is itself a meaningful act of self-awareness.", tool.Title, overall)
		fields[FieldIntegration] = "The areas you scored lowest are likely feeding each other: stress in one makes the patterns in the others harder to interrupt. Treating them as one system, rather than separate problems, keeps the work from feeling overwhelming."
		fields[FieldCoreWork] = "The core work right now is stabilization: choosing the single area whose improvement would relieve the most pressure elsewhere, and starting there with small, repeatable steps."
		steps = []string{
			"Re-read your lowest-scoring area and pick the one change that feels most doable.",
			"Practice that change daily for two weeks before adding anything else.",
			"Consider sharing these results with a coach or someone you trust.",
		}
	case model.BandHealthy:
		fields[FieldOverview] = fmt.Sprintf("Your overall %s result (%.0f/100) reflects a landscape that is largely working for you. The patterns across areas support rather than undermine each other, which is the signature of durable wellbeing rather than a lucky streak.", tool.Title, overall)
		fields[FieldIntegration] = "Your stronger areas are clearly reinforcing one another. The remaining friction points are best understood in that context: they are specific, bounded, and addressable from a position of strength."
		fields[FieldCoreWork] = "The core work is refinement: protecting the habits that produced these results, and deliberately extending them to whichever area scored lowest."
		steps = []string{
			"Name the habits most responsible for your strongest area.",
			"Apply one of those habits to your lowest-scoring area this month.",
			"Revisit this assessment in three months to confirm the trend.",
		}
	default:
		fields[FieldOverview] = fmt.Sprintf("Your overall %s result (%.0f/100) shows a genuinely mixed picture: real strengths alongside areas carrying tension. This middle band is where focused effort pays off fastest, because the foundation is present and the problem areas are still specific.", tool.Title, overall)
		fields[FieldIntegration] = "Your stronger and weaker areas are pulling against each other right now. The aim of integration is to let the strengths set the tone, so the strained areas borrow stability instead of spreading stress."
		fields[FieldCoreWork] = "The core work is prioritization: resisting the urge to improve everything at once, and giving one strained area sustained attention until it stabilizes."
		steps = []string{
			"Rank your areas from most to least settled, using the per-area summaries.",
			"Choose the lowest-ranked area and commit to one practice from its summary.",
			"Schedule a monthly check-in with yourself on that single practice.",
		}
	}

	return &model.InsightResult{
		Fields: fields,
		Lists:  map[string][]string{FieldNextSteps: steps},
	}
}

func fallbackComparison(req InsightRequest) *model.InsightResult {
	labelA, labelB := "Scenario A", "Scenario B"
	qA, qB := 50.0, 50.0
	if req.Context != nil {
		if s := req.Context.ScenarioA; s != nil {
			if s.Label != "" {
				labelA = s.Label
			}
			if s.Scores != nil {
				qA = s.Scores.OverallQuotient
			}
		}
		if s := req.Context.ScenarioB; s != nil {
			if s.Label != "" {
				labelB = s.Label
			}
			if s.Scores != nil {
				qB = s.Scores.OverallQuotient
			}
		}
	}

	higher, lower, hq, lq := labelA, labelB, qA, qB
	if qB > qA {
		higher, lower, hq, lq = labelB, labelA, qB, qA
	}

	fields := map[string]string{
		FieldOverview: fmt.Sprintf("These two scenarios, %s (%.0f/100) and %s (%.0f/100), describe noticeably different versions of your situation. Comparing them side by side is valuable precisely because the differences point to which conditions actually support you, independent of how either scenario feels in the moment.", labelA, qA, labelB, qB),
	}

	var diffs []string
	if hq-lq < 5 {
		fields[FieldRecommendation] = fmt.Sprintf("The scenarios score within a few points of each other, so the numbers alone do not favor either. Decide between %s and %s on the dimension that matters most to you personally, and revisit once circumstances shift.", labelA, labelB)
		diffs = []string{
			fmt.Sprintf("Overall wellbeing is close: %s at %.0f and %s at %.0f.", labelA, qA, labelB, qB),
			"The meaningful differences are in individual areas rather than the totals.",
		}
	} else {
		fields[FieldRecommendation] = fmt.Sprintf("On balance, %s supports your wellbeing more than %s, and by a margin (%.0f vs %.0f) large enough to take seriously. Before committing, check whether the strained areas of %s are fixable in place or structural.", higher, lower, hq, lq, lower)
		diffs = []string{
			fmt.Sprintf("%s scores %.0f overall against %.0f for %s.", higher, hq, lq, lower),
			fmt.Sprintf("The patterns that strain you in %s appear more manageable in %s.", lower, higher),
		}
	}

	return &model.InsightResult{
		Fields: fields,
		Lists:  map[string][]string{FieldKeyDifferences: diffs},
	}
}
