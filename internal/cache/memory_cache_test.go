package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"mindpath/internal/model"
)

func cachedResult(pattern string) *model.InsightResult {
	return &model.InsightResult{
		Kind:   model.KindLeaf,
		Source: model.SourceLLM,
		Fields: map[string]string{"pattern": pattern},
	}
}

func TestMemoryCachePutGetRoundTrip(t *testing.T) {
	c := NewMemoryInsightCache()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "money-beliefs", "S1", "belief", cachedResult("scarcity lens")))

	got, err := c.Get(ctx, "money-beliefs", "S1", "belief")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "scarcity lens", got.Field("pattern"))
}

func TestMemoryCacheMissReturnsNilNil(t *testing.T) {
	c := NewMemoryInsightCache()
	ctx := context.Background()

	got, err := c.Get(ctx, "money-beliefs", "S1", "belief")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMemoryCacheKeysAreIndependent(t *testing.T) {
	c := NewMemoryInsightCache()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "money-beliefs", "S1", "belief", cachedResult("first student")))
	require.NoError(t, c.Put(ctx, "money-beliefs", "S2", "belief", cachedResult("second student")))
	require.NoError(t, c.Put(ctx, "life-balance", "S1", "health", cachedResult("other tool")))

	got, err := c.Get(ctx, "money-beliefs", "S1", "belief")
	require.NoError(t, err)
	require.Equal(t, "first student", got.Field("pattern"))

	// Clearing one student leaves the others untouched
	require.NoError(t, c.Clear(ctx, "money-beliefs", "S1"))

	got, err = c.Get(ctx, "money-beliefs", "S1", "belief")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = c.Get(ctx, "money-beliefs", "S2", "belief")
	require.NoError(t, err)
	require.Equal(t, "second student", got.Field("pattern"))

	got, err = c.Get(ctx, "life-balance", "S1", "health")
	require.NoError(t, err)
	require.Equal(t, "other tool", got.Field("pattern"))
}

func TestMemoryCacheGetAllReturnsCopy(t *testing.T) {
	c := NewMemoryInsightCache()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "money-beliefs", "S1", "belief", cachedResult("a")))
	require.NoError(t, c.Put(ctx, "money-beliefs", "S1", "behavior", cachedResult("b")))

	all, err := c.GetAll(ctx, "money-beliefs", "S1")
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Mutating the returned map must not affect the cache
	delete(all, "belief")

	got, err := c.Get(ctx, "money-beliefs", "S1", "belief")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := NewMemoryInsightCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, c.Put(ctx, "money-beliefs", "S1", "belief", cachedResult("p")))
			_, err := c.GetAll(ctx, "money-beliefs", "S1")
			require.NoError(t, err)
		}()
	}
	wg.Wait()
}
