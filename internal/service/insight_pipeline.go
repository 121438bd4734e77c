package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"mindpath/internal/config"
	"mindpath/internal/llm"
	"mindpath/internal/model"
)

// FallbackRecorder receives one entry per fallback invocation. The mongo
// repository implements it in production; tests use an in-memory recorder.
type FallbackRecorder interface {
	Append(ctx context.Context, entry *model.FallbackLogEntry) error
}

// TieredInsightPipeline turns one insight request into a result through a
// fixed sequence: LLM attempt, one backed-off retry, deterministic fallback.
// Generate never returns an error; the caller always gets a usable insight
// tagged with its provenance.
type TieredInsightPipeline struct {
	gateway     llm.Gateway
	cfg         *config.LLMConfig
	fallbackLog FallbackRecorder
}

// NewTieredInsightPipeline creates a pipeline. fallbackLog may be nil when
// fallback monitoring is not wired (tests, offline tooling).
func NewTieredInsightPipeline(gateway llm.Gateway, cfg *config.LLMConfig, fallbackLog FallbackRecorder) *TieredInsightPipeline {
	return &TieredInsightPipeline{
		gateway:     gateway,
		cfg:         cfg,
		fallbackLog: fallbackLog,
	}
}

// Generate runs the attempt/retry/fallback sequence for one request.
func (p *TieredInsightPipeline) Generate(ctx context.Context, req InsightRequest) *model.InsightResult {
	kc := p.cfg.Kind(req.Kind)

	result, err := p.attempt(ctx, req, kc)
	if err == nil {
		result.Source = model.SourceLLM
		result.GeneratedAt = time.Now()
		return result
	}

	// Fixed backoff before the single retry. A context cancelled while
	// waiting goes straight to the fallback: the caller still gets content.
	backoff := time.Duration(kc.RetryBackoffMS) * time.Millisecond
	select {
	case <-ctx.Done():
		return p.fallback(ctx, req, fmt.Errorf("cancelled during retry backoff: %w", err))
	case <-time.After(backoff):
	}

	result, err = p.attempt(ctx, req, kc)
	if err == nil {
		result.Source = model.SourceLLMRetry
		result.GeneratedAt = time.Now()
		return result
	}

	return p.fallback(ctx, req, err)
}

// attempt performs one full LLM round: prompt, call, parse, validate. A
// response that parses but fails validation is an attempt failure, not a
// crash, exactly like a transport error.
func (p *TieredInsightPipeline) attempt(ctx context.Context, req InsightRequest, kc config.KindConfig) (*model.InsightResult, error) {
	system, user := BuildPrompts(req)

	raw, err := p.gateway.Complete(ctx, llm.Request{
		System:      system,
		User:        user,
		Model:       kc.Model,
		Temperature: kc.Temperature,
		MaxTokens:   kc.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	result := ParseInsightResponse(raw, req.Kind)
	if !ValidateInsight(result, req.Kind, kc) {
		return nil, fmt.Errorf("response failed validation for kind %s", req.Kind)
	}
	return result, nil
}

// fallback produces the deterministic result and records the invocation.
// The log write is best-effort: monitoring must never break the pipeline's
// reliability contract.
func (p *TieredInsightPipeline) fallback(ctx context.Context, req InsightRequest, cause error) *model.InsightResult {
	result := GenerateFallback(req)
	result.ErrorDetail = cause.Error()

	if p.fallbackLog != nil {
		entry := &model.FallbackLogEntry{
			ID:           uuid.New().String(),
			Timestamp:    time.Now(),
			StudentID:    req.StudentID,
			ToolID:       req.ToolID,
			Kind:         req.Kind,
			ItemKey:      req.ItemKey,
			ErrorMessage: cause.Error(),
		}
		// Detached from the request context: the entry should land even
		// when the fallback was triggered by that context's cancellation.
		if err := p.fallbackLog.Append(context.WithoutCancel(ctx), entry); err != nil {
			log.Printf("[pipeline] failed to record fallback for %s/%s: %v", req.ToolID, req.StudentID, err)
		}
	}

	return result
}
