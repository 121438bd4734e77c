package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"mindpath/internal/cache"
	"mindpath/internal/model"
	"mindpath/internal/repository"
)

// leafGenTimeout bounds one background leaf generation end to end: two LLM
// attempts plus the retry backoff must fit comfortably inside it.
const leafGenTimeout = 90 * time.Second

// AssessmentService drives the insight lifecycle of one assessment attempt:
// background leaf generation as items complete, blocking synthesis at
// submission, comparison runs, and restart.
type AssessmentService struct {
	catalog     *model.ToolCatalog
	pipeline    *TieredInsightPipeline
	synthesizer *HierarchicalSynthesizer
	insights    cache.InsightCache
	reportRepo  repository.ReportRepo
	broadcaster Broadcaster
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	catalog *model.ToolCatalog,
	pipeline *TieredInsightPipeline,
	synthesizer *HierarchicalSynthesizer,
	insights cache.InsightCache,
	reportRepo repository.ReportRepo,
) *AssessmentService {
	return &AssessmentService{
		catalog:     catalog,
		pipeline:    pipeline,
		synthesizer: synthesizer,
		insights:    insights,
		reportRepo:  reportRepo,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CompleteItem is called as the student finishes each item. It kicks off
// leaf insight generation in the background and returns immediately; the
// result lands in the insight cache and is announced over WebSocket.
func (s *AssessmentService) CompleteItem(ctx context.Context, toolID, studentID, itemKey string, scores *model.ScoreContext) error {
	tool := s.catalog.Tool(toolID)
	if tool == nil {
		return fmt.Errorf("unknown tool: %s", toolID)
	}
	if !tool.HasItem(itemKey) {
		return fmt.Errorf("unknown item %q for tool %s", itemKey, toolID)
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[assessment] recovered from panic in leaf generation %s/%s/%s: %v", toolID, studentID, itemKey, r)
			}
		}()

		// Detached from the HTTP request; the student has already moved on
		genCtx, cancel := context.WithTimeout(context.Background(), leafGenTimeout)
		defer cancel()

		result := s.pipeline.Generate(genCtx, InsightRequest{
			Kind:      model.KindLeaf,
			ToolID:    toolID,
			StudentID: studentID,
			ItemKey:   itemKey,
			Scores:    scores,
			Context: &PromptContext{
				Tool:      tool,
				ItemTitle: tool.ItemTitle(itemKey),
			},
		})

		if err := s.insights.Put(genCtx, toolID, studentID, itemKey, result); err != nil {
			log.Printf("[assessment] failed to cache leaf insight %s/%s/%s: %v", toolID, studentID, itemKey, err)
		}

		if s.broadcaster != nil {
			s.broadcaster.BroadcastToStudent(toolID, studentID, "insight_ready", map[string]interface{}{
				"itemKey": itemKey,
				"source":  result.Source,
			})
			if result.Source == model.SourceFallback {
				s.broadcaster.BroadcastToMonitors("fallback_used", map[string]interface{}{
					"toolId":    toolID,
					"studentId": studentID,
					"itemKey":   itemKey,
					"kind":      model.KindLeaf,
				})
			}
		}
	}()

	return nil
}

// Submit runs the blocking synthesis pass: one group synthesis per group in
// catalog order, then the overall synthesis, then persists the report.
// Leaf insights missing from the cache (student skipped items, background
// generation still racing) are tolerated; their contribution is omitted.
func (s *AssessmentService) Submit(ctx context.Context, toolID, studentID string, scores *model.ScoreContext) (*model.AssessmentReport, error) {
	tool := s.catalog.Tool(toolID)
	if tool == nil {
		return nil, fmt.Errorf("unknown tool: %s", toolID)
	}

	leaves, err := s.insights.GetAll(ctx, toolID, studentID)
	if err != nil {
		log.Printf("[assessment] reading cached leaves for %s/%s failed, synthesizing without them: %v", toolID, studentID, err)
		leaves = map[string]*model.InsightResult{}
	}

	groups := make(map[string]*model.InsightResult, len(tool.Groups))
	for _, g := range tool.Groups {
		groups[g.Key] = s.synthesizer.SynthesizeGroup(ctx, toolID, studentID, g.Key, leaves, scores)
	}

	overall := s.synthesizer.SynthesizeOverall(ctx, toolID, studentID, groups, scores)

	now := time.Now()
	report := &model.AssessmentReport{
		ToolID:    toolID,
		StudentID: studentID,
		Status:    "ready",
		Leaves:    leaves,
		Groups:    groups,
		Overall:   overall,
		Scores:    scores,
		CreatedAt: now,
		ReadyAt:   &now,
	}

	if err := s.reportRepo.SaveReport(ctx, report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToStudent(toolID, studentID, "report_ready", map[string]interface{}{
			"toolId": toolID,
			"source": overall.Source,
		})
	}

	return report, nil
}

// Compare generates a comparison insight over two scenario score contexts
func (s *AssessmentService) Compare(ctx context.Context, toolID, studentID string, a, b Scenario) (*model.ComparisonReport, error) {
	if s.catalog.Tool(toolID) == nil {
		return nil, fmt.Errorf("unknown tool: %s", toolID)
	}

	insight := s.synthesizer.SynthesizeComparison(ctx, toolID, studentID, a, b)

	report := &model.ComparisonReport{
		ToolID:    toolID,
		StudentID: studentID,
		ScenarioA: a.Label,
		ScenarioB: b.Label,
		Insight:   insight,
		CreatedAt: time.Now(),
	}

	if err := s.reportRepo.SaveComparison(ctx, report); err != nil {
		return nil, fmt.Errorf("save comparison: %w", err)
	}
	return report, nil
}

// Restart discards a student's attempt: cached leaf insights are cleared so
// a fresh attempt starts from nothing. Persisted reports are kept.
func (s *AssessmentService) Restart(ctx context.Context, toolID, studentID string) error {
	if s.catalog.Tool(toolID) == nil {
		return fmt.Errorf("unknown tool: %s", toolID)
	}
	return s.insights.Clear(ctx, toolID, studentID)
}

// GetReport retrieves the persisted report, nil when none exists
func (s *AssessmentService) GetReport(ctx context.Context, toolID, studentID string) (*model.AssessmentReport, error) {
	return s.reportRepo.GetReport(ctx, toolID, studentID)
}
