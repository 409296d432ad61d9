package reading

import "github.com/example/reading-portal/internal/domain/user"

// Capacity and quota constants for one department/date slot. These are the
// single source of truth; nothing else in the repo restates them.
const (
	// Capacity is the hard ceiling of readings per department per date,
	// enforced by the server and predicted by the client.
	Capacity = 3

	// JuniorQuota is the maximum number of junior occupants per slot.
	JuniorQuota = 2

	// CutoffHour is the local hour (24h) after which ordinary users can no
	// longer reserve or cancel a same-day reading.
	CutoffHour = 14
)

// Report is the free-text artifact attached to a reading after its date has
// passed. Its own lifecycle is managed server-side; the engine only cares
// whether one is present.
type Report struct {
	ID          int64
	Title       string
	Description string
}

// Reading is one occupied unit of a slot: a reservation by one user for one
// department on one date. Readings are immutable once created; they appear and
// disappear with reserve/cancel but never change occupant.
type Reading struct {
	ID           int64
	Date         Date
	DepartmentID int64
	User         user.User

	// Blocked marks the whole department/date combination unavailable. The
	// server represents a blocked day as a single sentinel reading carrying
	// this flag rather than as a separate concept.
	Blocked bool

	Report *Report
}

// HasReport reports whether a report has been attached.
func (r Reading) HasReport() bool { return r.Report != nil }

// NeedsReport reports whether r is a past reading still missing its report.
// Display-only: the eligibility rules never act on it.
func (r Reading) NeedsReport(today Date) bool {
	return r.Date.Before(today) && !r.HasReport() && !r.Blocked
}
