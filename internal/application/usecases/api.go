package usecases

import (
	"context"

	"github.com/example/reading-portal/internal/domain/reading"
)

// PortalAPI is the slice of the external portal the admission commands need.
// The server behind it stays authoritative for capacity and quotas; the
// client only predicts.
type PortalAPI interface {
	CreateReading(ctx context.Context, userID int64, date reading.Date, departmentID int64) error
	DeleteReading(ctx context.Context, readingID int64) error
	CreateReport(ctx context.Context, readingID int64, title, description string) error
	UpdateReport(ctx context.Context, reportID int64, title, description string) error
}

// Outcome reports what an admission command did. A command that fails its
// re-checked precondition is a silent no-op: Dispatched stays false and no
// request is sent.
type Outcome struct {
	Dispatched bool
	Verdict    reading.Verdict
}
