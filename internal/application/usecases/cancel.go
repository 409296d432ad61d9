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

// Cancel removes the acting user's own reading from the snapshot's slot,
// subject to the same re-checked eligibility chain as Reserve.
type Cancel struct {
	API     PortalAPI
	Tracker *reconcile.Tracker
	Cache   *snapshots.Cache
	Clock   clock.Clock
}

func (u Cancel) Execute(ctx context.Context, snap reading.Snapshot, actor *user.User) (Outcome, error) {
	key := tupleKey(snap, actor)
	v := reading.Evaluate(reading.Input{
		Snapshot: snap,
		Actor:    actor,
		Now:      u.Clock.Now(),
		Pending:  u.Tracker.Pending(key),
	})
	if !v.CanCancel {
		logger.L().Debug("cancel precondition not met",
			"department", snap.DepartmentID, "date", snap.Date, "state", v.State)
		return Outcome{Verdict: v}, nil
	}

	own, ok := snap.FindByUser(actor.ID)
	if !ok {
		// Optimistically signed up but the reading never landed; nothing
		// to delete server-side.
		logger.L().Debug("cancel: no reading to delete",
			"department", snap.DepartmentID, "date", snap.Date)
		return Outcome{Verdict: v}, nil
	}

	u.Tracker.Begin(key, false, u.Clock.Now())
	if err := u.API.DeleteReading(ctx, own.ID); err != nil {
		u.Tracker.Clear(key)
		return Outcome{Dispatched: true, Verdict: v}, err
	}

	u.Cache.Invalidate(snap.DepartmentID)
	return Outcome{Dispatched: true, Verdict: v}, nil
}
