package usecases

import (
	"context"
	"fmt"

	"github.com/example/reading-portal/internal/clock"
	"github.com/example/reading-portal/internal/domain/reading"
	"github.com/example/reading-portal/internal/domain/user"
	"github.com/example/reading-portal/internal/internaltypes"
)

// AttachReport files the free-text report for a past reading. Reports exist
// only for dates that have passed; the owning user (or an admin) writes them.
type AttachReport struct {
	API   PortalAPI
	Clock clock.Clock
}

func (u AttachReport) Execute(ctx context.Context, r reading.Reading, actor *user.User, title, description string) error {
	if actor == nil {
		return internaltypes.ErrUnauthorized
	}
	if r.User.ID != actor.ID && !user.IsAdmin(actor) {
		return internaltypes.ErrUnauthorized
	}
	today := reading.DateOf(u.Clock.Now())
	if !r.Date.Before(today) {
		return fmt.Errorf("reading on %s has not happened yet", r.Date)
	}
	if r.HasReport() {
		return fmt.Errorf("reading %d already has a report; update it instead", r.ID)
	}
	return u.API.CreateReport(ctx, r.ID, title, description)
}

// UpdateReport rewrites an existing report's text.
type UpdateReport struct {
	API PortalAPI
}

func (u UpdateReport) Execute(ctx context.Context, reportID int64, actor *user.User, title, description string) error {
	if actor == nil {
		return internaltypes.ErrUnauthorized
	}
	return u.API.UpdateReport(ctx, reportID, title, description)
}
