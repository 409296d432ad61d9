package snapshots

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/reading-portal/internal/domain/reading"
)

var day = reading.Date{Year: 2026, Month: time.September, Day: 9}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fetchCounter struct {
	mu    sync.Mutex
	calls int
	snaps []reading.Snapshot
	err   error
	done  chan struct{}
}

func (f *fetchCounter) fetch(ctx context.Context, departmentID int64) ([]reading.Snapshot, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.done != nil {
		defer func() { f.done <- struct{}{} }()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.snaps, nil
}

func (f *fetchCounter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func noMine(ctx context.Context, from, to reading.Date) ([]reading.Snapshot, error) {
	return nil, nil
}

func TestCacheDepartmentTTL(t *testing.T) {
	clk := &fakeClock{t: time.Date(2026, time.September, 7, 9, 0, 0, 0, time.Local)}
	f := &fetchCounter{snaps: []reading.Snapshot{{DepartmentID: 5, Date: day}}}
	c := New(f.fetch, noMine, 30*time.Second, clk)

	ctx := context.Background()
	snaps, err := c.Department(ctx, 5)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, 1, f.count())

	// Within the TTL the cached copy is served.
	_, err = c.Department(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, f.count())

	clk.advance(31 * time.Second)
	_, err = c.Department(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, f.count())
}

func TestCacheDepartmentFetchError(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	f := &fetchCounter{err: errors.New("portal down")}
	c := New(f.fetch, noMine, time.Minute, clk)

	_, err := c.Department(context.Background(), 5)
	require.Error(t, err)

	// Nothing was cached; the next call tries again.
	f.err = nil
	f.snaps = []reading.Snapshot{{DepartmentID: 5, Date: day}}
	snaps, err := c.Department(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

func TestCacheInvalidateRefetches(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	f := &fetchCounter{
		snaps: []reading.Snapshot{{DepartmentID: 5, Date: day}},
		done:  make(chan struct{}, 4),
	}
	c := New(f.fetch, noMine, time.Hour, clk)

	_, err := c.Department(context.Background(), 5)
	require.NoError(t, err)
	<-f.done
	require.Equal(t, 1, f.count())

	c.Invalidate(5)
	select {
	case <-f.done:
	case <-time.After(5 * time.Second):
		t.Fatal("background refetch never ran")
	}
	assert.Equal(t, 2, f.count())

	// The refetched entry is warm again; no further fetch needed.
	_, err = c.Department(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, f.count())
}

func TestCacheOnFresh(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	f := &fetchCounter{snaps: []reading.Snapshot{
		{DepartmentID: 5, Date: day},
		{DepartmentID: 5, Date: day.AddDays(1)},
	}}
	c := New(f.fetch, noMine, time.Hour, clk)

	var mu sync.Mutex
	var seen []reading.Date
	c.OnFresh(func(s reading.Snapshot) {
		mu.Lock()
		seen = append(seen, s.Date)
		mu.Unlock()
	})

	_, err := c.Department(context.Background(), 5)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.Equal(t, day, seen[0])
	assert.Equal(t, day.AddDays(1), seen[1])
}

func TestCacheMineRange(t *testing.T) {
	clk := &fakeClock{t: time.Now()}
	var calls int
	fetchMine := func(ctx context.Context, from, to reading.Date) ([]reading.Snapshot, error) {
		calls++
		return []reading.Snapshot{{DepartmentID: 2, Date: from}}, nil
	}
	c := New((&fetchCounter{}).fetch, fetchMine, time.Hour, clk)

	ctx := context.Background()
	from, to := day, day.AddDays(30)

	_, err := c.Mine(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// Same range, still warm.
	_, err = c.Mine(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// A different range bypasses the cache.
	_, err = c.Mine(ctx, from.AddDays(-7), to)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	// Invalidate drops the aggregate too.
	c.Invalidate()
	_, err = c.Mine(ctx, from.AddDays(-7), to)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}
