// Package snapshots caches slot snapshots fetched from the portal and
// re-fetches them in the background when an admission command invalidates
// them. Invalidation is fire-and-forget: command callers never wait on it.
package snapshots

import (
	"context"
	"sync"
	"time"

	"github.com/example/reading-portal/internal/clock"
	"github.com/example/reading-portal/internal/domain/reading"
	"github.com/example/reading-portal/internal/logger"
)

// DepartmentFetch fetches the current snapshots for one department.
type DepartmentFetch func(ctx context.Context, departmentID int64) ([]reading.Snapshot, error)

// MineFetch fetches the aggregate "my readings" view for a date range.
type MineFetch func(ctx context.Context, from, to reading.Date) ([]reading.Snapshot, error)

type entry struct {
	snaps     []reading.Snapshot
	fetchedAt time.Time
}

// Cache holds the last-known snapshots per department plus the aggregate
// "mine" view. Every fresh batch of snapshots is announced to the observers
// registered with OnFresh, which is how optimistic overrides get cleared.
type Cache struct {
	fetchDept DepartmentFetch
	fetchMine MineFetch
	clk       clock.Clock
	ttl       time.Duration

	mu      sync.Mutex
	depts   map[int64]entry
	mine    *entry
	mineRng [2]reading.Date
	onFresh []func(reading.Snapshot)
}

func New(fetchDept DepartmentFetch, fetchMine MineFetch, ttl time.Duration, clk clock.Clock) *Cache {
	return &Cache{
		fetchDept: fetchDept,
		fetchMine: fetchMine,
		clk:       clk,
		ttl:       ttl,
		depts:     make(map[int64]entry),
	}
}

// OnFresh registers an observer called once per snapshot whenever fresh
// authoritative data lands, whatever triggered the fetch.
func (c *Cache) OnFresh(fn func(reading.Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFresh = append(c.onFresh, fn)
}

// Department returns the cached snapshots for departmentID, fetching when the
// cache is cold or stale.
func (c *Cache) Department(ctx context.Context, departmentID int64) ([]reading.Snapshot, error) {
	c.mu.Lock()
	e, ok := c.depts[departmentID]
	ttl, now := c.ttl, c.clk.Now()
	c.mu.Unlock()

	if ok && (ttl <= 0 || now.Sub(e.fetchedAt) < ttl) {
		return e.snaps, nil
	}
	return c.refreshDepartment(ctx, departmentID)
}

// Mine returns the cached "my readings" view for [from, to], refetching when
// cold, stale, or asked for a different range.
func (c *Cache) Mine(ctx context.Context, from, to reading.Date) ([]reading.Snapshot, error) {
	c.mu.Lock()
	e := c.mine
	sameRange := c.mineRng[0].Equal(from) && c.mineRng[1].Equal(to)
	ttl, now := c.ttl, c.clk.Now()
	c.mu.Unlock()

	if e != nil && sameRange && (ttl <= 0 || now.Sub(e.fetchedAt) < ttl) {
		return e.snaps, nil
	}
	snaps, err := c.fetchMine(ctx, from, to)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.mine = &entry{snaps: snaps, fetchedAt: c.clk.Now()}
	c.mineRng = [2]reading.Date{from, to}
	observers := append([]func(reading.Snapshot){}, c.onFresh...)
	c.mu.Unlock()

	announce(observers, snaps)
	return snaps, nil
}

// Invalidate drops the cached entries for the given departments plus the
// "mine" aggregate, then refetches each department in the background. Errors
// are logged, not returned: the next Department call fetches again anyway.
func (c *Cache) Invalidate(departmentIDs ...int64) {
	c.mu.Lock()
	for _, id := range departmentIDs {
		delete(c.depts, id)
	}
	c.mine = nil
	c.mu.Unlock()

	for _, id := range departmentIDs {
		id := id
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if _, err := c.refreshDepartment(ctx, id); err != nil {
				logger.L().Warn("snapshot refetch failed", "department", id, "err", err)
			}
		}()
	}
}

func (c *Cache) refreshDepartment(ctx context.Context, departmentID int64) ([]reading.Snapshot, error) {
	snaps, err := c.fetchDept(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.depts[departmentID] = entry{snaps: snaps, fetchedAt: c.clk.Now()}
	observers := append([]func(reading.Snapshot){}, c.onFresh...)
	c.mu.Unlock()

	announce(observers, snaps)
	return snaps, nil
}

func announce(observers []func(reading.Snapshot), snaps []reading.Snapshot) {
	for _, fn := range observers {
		for _, s := range snaps {
			fn(s)
		}
	}
}
