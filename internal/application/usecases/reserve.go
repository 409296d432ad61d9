package usecases

import (
	"context"

	"github.com/example/reading-portal/internal/clock"
	"github.com/example/reading-portal/internal/domain/reading"
	"github.com/example/reading-portal/internal/domain/user"
	"github.com/example/reading-portal/internal/logger"
	"github.com/example/reading-portal/internal/reconcile"
	"github.com/example/reading-portal/internal/snapshots"
)

// Reserve signs the acting user up for the snapshot's slot. The eligibility
// verdict is re-evaluated at dispatch time, never taken from a stale render.
type Reserve struct {
	API     PortalAPI
	Tracker *reconcile.Tracker
	Cache   *snapshots.Cache
	Clock   clock.Clock
}

func (u Reserve) Execute(ctx context.Context, snap reading.Snapshot, actor *user.User) (Outcome, error) {
	key := tupleKey(snap, actor)
	v := reading.Evaluate(reading.Input{
		Snapshot: snap,
		Actor:    actor,
		Now:      u.Clock.Now(),
		Pending:  u.Tracker.Pending(key),
	})
	if !v.CanReserve {
		// Unreachable through a well-behaved UI; stays a local no-op.
		logger.L().Debug("reserve precondition not met",
			"department", snap.DepartmentID, "date", snap.Date, "state", v.State)
		return Outcome{Verdict: v}, nil
	}

	u.Tracker.Begin(key, true, u.Clock.Now())
	if err := u.API.CreateReading(ctx, actor.ID, snap.Date, snap.DepartmentID); err != nil {
		// Cleared, not flipped: the failed command changed nothing
		// server-side, so snapshot truth matches the pre-click state.
		u.Tracker.Clear(key)
		return Outcome{Dispatched: true, Verdict: v}, err
	}

	u.Cache.Invalidate(snap.DepartmentID)
	return Outcome{Dispatched: true, Verdict: v}, nil
}

func tupleKey(snap reading.Snapshot, actor *user.User) reconcile.Key {
	k := reconcile.Key{DepartmentID: snap.DepartmentID, Date: snap.Date}
	if actor != nil {
		k.UserID = actor.ID
	}
	return k
}
