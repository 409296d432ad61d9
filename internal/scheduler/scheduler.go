// Package scheduler polls a department's slot snapshots and reports verdict
// transitions, backing the watch command.
package scheduler

import (
	"context"
	"time"

	"github.com/example/reading-portal/internal/clock"
	"github.com/example/reading-portal/internal/domain/reading"
	"github.com/example/reading-portal/internal/domain/user"
	"github.com/example/reading-portal/internal/logger"
	"github.com/example/reading-portal/internal/snapshots"
)

// Change is one observed verdict transition for a slot.
type Change struct {
	Snapshot reading.Snapshot
	Previous reading.State
	Current  reading.State
	First    bool
}

// Watcher re-evaluates one department's slots on an interval. Eligibility is
// recomputed from scratch every tick; only state transitions are reported.
type Watcher struct {
	Cache        *snapshots.Cache
	Clock        clock.Clock
	Actor        *user.User
	DepartmentID int64
	Interval     time.Duration
	OnChange     func(Change)

	last map[string]reading.State
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.last = make(map[string]reading.State)

	t := time.NewTicker(w.Interval)
	defer t.Stop()

	// kick immediately
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			w.Cache.Invalidate(w.DepartmentID)
			w.tick(ctx)
		}
	}
}

func (w *Watcher) tick(ctx context.Context) {
	snaps, err := w.Cache.Department(ctx, w.DepartmentID)
	if err != nil {
		logger.L().Warn("watch: snapshot fetch failed", "department", w.DepartmentID, "err", err)
		return
	}

	now := w.Clock.Now()
	for _, s := range snaps {
		v := reading.Evaluate(reading.Input{Snapshot: s, Actor: w.Actor, Now: now})
		key := s.Date.String()
		prev, seen := w.last[key]
		w.last[key] = v.State
		if !seen || prev != v.State {
			if w.OnChange != nil {
				w.OnChange(Change{Snapshot: s, Previous: prev, Current: v.State, First: !seen})
			}
		}
	}
}
