package reading

import (
	"fmt"
	"time"

	"github.com/example/reading-portal/internal/domain/user"
)

// Snapshot is the set of readings for one department+date pair as last
// fetched from the server. It is authoritative for capacity usage and is
// never mutated by the engine; a fresh fetch replaces it wholesale.
type Snapshot struct {
	DepartmentID int64
	Date         Date
	Readings     []Reading
}

// Blocked reports whether any reading carries the blocked sentinel. One
// sentinel is enough; the count is irrelevant.
func (s Snapshot) Blocked() bool {
	for _, r := range s.Readings {
		if r.Blocked {
			return true
		}
	}
	return false
}

// Full reports whether the snapshot is at or over capacity.
func (s Snapshot) Full() bool {
	return len(s.Readings) >= Capacity
}

// OpenSlots returns the remaining capacity, never negative.
func (s Snapshot) OpenSlots() int {
	if n := Capacity - len(s.Readings); n > 0 {
		return n
	}
	return 0
}

// FindByUser returns the reading occupied by userID, if any.
func (s Snapshot) FindByUser(userID int64) (Reading, bool) {
	for _, r := range s.Readings {
		if r.User.ID == userID {
			return r, true
		}
	}
	return Reading{}, false
}

// Contains reports whether userID occupies a reading in the snapshot.
func (s Snapshot) Contains(userID int64) bool {
	_, ok := s.FindByUser(userID)
	return ok
}

// JuniorCount counts occupants whose declared seniority is junior. Occupants
// with a missing or unknown seniority do not count (fail open) and are
// reported as data-integrity warnings rather than treated as an error.
func (s Snapshot) JuniorCount() (int, []string) {
	var n int
	var warnings []string
	for _, r := range s.Readings {
		if r.Blocked {
			continue
		}
		switch {
		case r.User.Seniority == user.SeniorityJunior:
			n++
		case !r.User.Seniority.Valid():
			warnings = append(warnings, fmt.Sprintf(
				"reading %d: occupant %d has unknown seniority %q", r.ID, r.User.ID, r.User.Seniority))
		}
	}
	return n, warnings
}

// BlackoutDay reports whether w is a weekday on which readings never happen.
func BlackoutDay(w time.Weekday) bool {
	return w == time.Sunday || w == time.Friday
}
