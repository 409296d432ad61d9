package usecases

import (
	"context"
	"fmt"

	"github.com/example/reading-portal/internal/domain/reading"
	"github.com/example/reading-portal/internal/domain/user"
	"github.com/example/reading-portal/internal/internaltypes"
	"github.com/example/reading-portal/internal/logger"
	"github.com/example/reading-portal/internal/snapshots"
)

// AdminAssign books a slot for another user. Admins skip the cutoff and
// junior-quota rules but not capacity, and not a day the server has
// explicitly blocked. No optimistic override: the assignment is for someone
// else's tuple and only the refetched snapshot should show it.
type AdminAssign struct {
	API   PortalAPI
	Cache *snapshots.Cache
}

func (u AdminAssign) Execute(ctx context.Context, snap reading.Snapshot, actor *user.User, target user.User) (Outcome, error) {
	if !user.IsAdmin(actor) {
		return Outcome{}, internaltypes.ErrUnauthorized
	}
	if snap.Full() {
		logger.L().Debug("admin assign: slot full",
			"department", snap.DepartmentID, "date", snap.Date)
		return Outcome{}, nil
	}
	if snap.Blocked() {
		logger.L().Debug("admin assign: day blocked",
			"department", snap.DepartmentID, "date", snap.Date)
		return Outcome{}, nil
	}
	if snap.Contains(target.ID) {
		return Outcome{}, fmt.Errorf("user %d already holds a reading on %s", target.ID, snap.Date)
	}

	if err := u.API.CreateReading(ctx, target.ID, snap.Date, snap.DepartmentID); err != nil {
		return Outcome{Dispatched: true}, err
	}
	u.Cache.Invalidate(snap.DepartmentID)
	return Outcome{Dispatched: true}, nil
}

// AdminRemove cancels any reading by id, with no ownership precondition.
type AdminRemove struct {
	API   PortalAPI
	Cache *snapshots.Cache
}

func (u AdminRemove) Execute(ctx context.Context, snap reading.Snapshot, actor *user.User, readingID int64) (Outcome, error) {
	if !user.IsAdmin(actor) {
		return Outcome{}, internaltypes.ErrUnauthorized
	}
	if err := u.API.DeleteReading(ctx, readingID); err != nil {
		return Outcome{Dispatched: true}, err
	}
	u.Cache.Invalidate(snap.DepartmentID)
	return Outcome{Dispatched: true}, nil
}
