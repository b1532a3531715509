package registry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/pathfinder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls   atomic.Int32
	err     error
	records []domain.PathwayRecord
}

func (s *countingSource) FetchPathwayRecords(context.Context) ([]domain.PathwayRecord, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func TestCache_ReusesSnapshotWithinWindow(t *testing.T) {
	src := &countingSource{records: []domain.PathwayRecord{{Code: "gpst", Name: "GP"}}}
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	cache := NewCache(src, time.Minute, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	first, err := cache.Get(ctx)
	require.NoError(t, err)
	second, err := cache.Get(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestCache_RefreshesAfterWindow(t *testing.T) {
	src := &countingSource{records: []domain.PathwayRecord{{Code: "gpst", Name: "GP"}}}
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	cache := NewCache(src, time.Minute, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, err := cache.Get(ctx)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = cache.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCache_Invalidate(t *testing.T) {
	src := &countingSource{records: []domain.PathwayRecord{{Code: "gpst", Name: "GP"}}}
	cache := NewCache(src, time.Hour)
	ctx := context.Background()

	_, err := cache.Get(ctx)
	require.NoError(t, err)
	cache.Invalidate()
	_, err = cache.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(2), src.calls.Load())
}

// gatedSource blocks its first fetch until release is closed and serves
// stale records from it. Later fetches return fresh records immediately.
type gatedSource struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
	stale   []domain.PathwayRecord
	fresh   []domain.PathwayRecord
}

func (s *gatedSource) FetchPathwayRecords(context.Context) ([]domain.PathwayRecord, error) {
	if s.calls.Add(1) == 1 {
		close(s.entered)
		<-s.release
		return s.stale, nil
	}
	return s.fresh, nil
}

func TestCache_InvalidateDiscardsInFlightRefresh(t *testing.T) {
	src := &gatedSource{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		stale:   []domain.PathwayRecord{{Code: "gpst", Name: "GP"}},
		fresh:   []domain.PathwayRecord{{Code: "gpst", Name: "GP"}, {Code: "rcem-hst", Name: "EM"}},
	}
	cache := NewCache(src, time.Hour)
	ctx := context.Background()

	done := make(chan *Registry)
	go func() {
		reg, err := cache.Get(ctx)
		assert.NoError(t, err)
		done <- reg
	}()
	<-src.entered

	cache.Invalidate()
	fresh, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Len(), "a Get after Invalidate must not join the older fetch")

	close(src.release)
	old := <-done
	assert.Equal(t, 1, old.Len())

	again, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, fresh, again, "the older fetch must not replace the newer snapshot")
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCache_FailureLeavesNoSnapshot(t *testing.T) {
	boom := errors.New("db down")
	src := &countingSource{err: boom}
	cache := NewCache(src, time.Hour)

	reg, err := cache.Get(context.Background())
	assert.Nil(t, reg)
	assert.ErrorIs(t, err, boom)

	src.err = nil
	src.records = []domain.PathwayRecord{{Code: "gpst", Name: "GP"}}
	reg, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
}

func TestCache_ConcurrentGetIsSafe(t *testing.T) {
	src := &countingSource{records: []domain.PathwayRecord{{Code: "gpst", Name: "GP"}}}
	cache := NewCache(src, time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg, err := cache.Get(ctx)
			assert.NoError(t, err)
			assert.Equal(t, 1, reg.Len())
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, src.calls.Load(), int32(1))
}

func TestNewCache_DefaultTTL(t *testing.T) {
	cache := NewCache(&countingSource{}, 0)
	assert.Equal(t, DefaultCacheTTL, cache.ttl)
}
