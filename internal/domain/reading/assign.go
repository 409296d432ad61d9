package reading

import "github.com/example/reading-portal/internal/domain/user"

// EligibleAssignees filters the user directory down to users an admin may
// assign to the snapshot's slot: everyone not already occupying a reading in
// it. Pure filter over occupant ids, no server round trip.
func EligibleAssignees(all []user.User, snap Snapshot) []user.User {
	taken := make(map[int64]bool, len(snap.Readings))
	for _, r := range snap.Readings {
		if !r.Blocked {
			taken[r.User.ID] = true
		}
	}
	out := make([]user.User, 0, len(all))
	for _, u := range all {
		if !taken[u.ID] {
			out = append(out, u)
		}
	}
	return out
}
