package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mindpath/internal/model"
)

type fallbackLogRepoStub struct {
	entries []*model.FallbackLogEntry
}

func (r *fallbackLogRepoStub) Append(ctx context.Context, entry *model.FallbackLogEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fallbackLogRepoStub) ListByTool(ctx context.Context, toolID string, since time.Time, limit int64) ([]*model.FallbackLogEntry, error) {
	var out []*model.FallbackLogEntry
	for _, e := range r.entries {
		if e.ToolID == toolID && e.Timestamp.After(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fallbackLogRepoStub) ListRecent(ctx context.Context, limit int64) ([]*model.FallbackLogEntry, error) {
	if int64(len(r.entries)) <= limit {
		return r.entries, nil
	}
	return r.entries[int64(len(r.entries))-limit:], nil
}

func TestSummaryCountsByKind(t *testing.T) {
	now := time.Now()
	repo := &fallbackLogRepoStub{entries: []*model.FallbackLogEntry{
		{ID: "1", ToolID: "money-beliefs", Kind: model.KindLeaf, Timestamp: now},
		{ID: "2", ToolID: "money-beliefs", Kind: model.KindLeaf, Timestamp: now},
		{ID: "3", ToolID: "money-beliefs", Kind: model.KindGroupSynthesis, Timestamp: now},
		{ID: "4", ToolID: "life-balance", Kind: model.KindLeaf, Timestamp: now},
		{ID: "5", ToolID: "money-beliefs", Kind: model.KindLeaf, Timestamp: now.Add(-48 * time.Hour)},
	}}
	svc := NewMonitorService(repo)

	summary, err := svc.Summary(context.Background(), "money-beliefs", now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, "money-beliefs", summary.ToolID)
	require.Equal(t, 3, summary.Total)
	require.Equal(t, 2, summary.ByKind[model.KindLeaf])
	require.Equal(t, 1, summary.ByKind[model.KindGroupSynthesis])
}

func TestSummaryEmptyWindow(t *testing.T) {
	svc := NewMonitorService(&fallbackLogRepoStub{})

	summary, err := svc.Summary(context.Background(), "money-beliefs", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, 0, summary.Total)
	require.Empty(t, summary.ByKind)
}
