package cmd

import (
	"context"
	"fmt"

	"github.com/example/reading-portal/internal/clock"
	"github.com/example/reading-portal/internal/config"
	"github.com/example/reading-portal/internal/domain/reading"
	"github.com/example/reading-portal/internal/domain/user"
	"github.com/example/reading-portal/internal/infrastructure/portalapi"
	"github.com/example/reading-portal/internal/infrastructure/session"
	"github.com/example/reading-portal/internal/logger"
	"github.com/example/reading-portal/internal/reconcile"
	"github.com/example/reading-portal/internal/snapshots"
)

// app wires the client stack for one command invocation: config, sealed
// session, API client, snapshot cache and override tracker.
type app struct {
	cfg      config.Config
	sessions *session.Store
	api      *portalapi.Client
	tracker  *reconcile.Tracker
	cache    *snapshots.Cache
	clk      clock.Clock
}

func newApp() (*app, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, Dir: cfg.ConfigDir}); err != nil {
		return nil, err
	}

	sessions := session.NewStore(cfg.SessionFile, cfg.SessionHashKey, cfg.SessionBlockKey)
	api := portalapi.New(cfg.APIURL, cfg.HTTPTimeout, sessions.Token)
	tracker := reconcile.NewTracker()

	cache := snapshots.New(
		func(ctx context.Context, departmentID int64) ([]reading.Snapshot, error) {
			return api.ReadingsForDepartment(ctx, departmentID, "active")
		},
		api.ReadingsForUser,
		cfg.SnapshotTTL,
		clock.System{},
	)
	// Fresh authoritative data always retires the optimistic overrides for
	// its tuples.
	cache.OnFresh(func(s reading.Snapshot) {
		tracker.ObserveSnapshot(s.DepartmentID, s.Date)
	})

	return &app{
		cfg:      cfg,
		sessions: sessions,
		api:      api,
		tracker:  tracker,
		cache:    cache,
		clk:      clock.System{},
	}, nil
}

// actingUser resolves the live profile. Commands re-resolve it per invocation
// so a user switch is never served from a stale capability check.
func (a *app) actingUser(ctx context.Context) (*user.User, error) {
	if _, ok := a.sessions.Load(); !ok {
		return nil, fmt.Errorf("not logged in (run `readingctl login`)")
	}
	u, err := a.api.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("session expired; run `readingctl login` again")
	}
	return u, nil
}

// snapshotFor returns the slot snapshot for one department and date. A date
// the listing does not mention is an empty, open slot.
func (a *app) snapshotFor(ctx context.Context, departmentID int64, date reading.Date) (reading.Snapshot, error) {
	snaps, err := a.cache.Department(ctx, departmentID)
	if err != nil {
		return reading.Snapshot{}, err
	}
	for _, s := range snaps {
		if s.Date.Equal(date) {
			return s, nil
		}
	}
	return reading.Snapshot{DepartmentID: departmentID, Date: date}, nil
}
