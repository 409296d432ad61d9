package reading

import "fmt"

// State classifies a slot for one acting user at one instant. Exactly one
// state holds; Evaluate picks the first matching rule in precedence order.
type State int

const (
	// StateDayBlocked: blackout weekday or blocked sentinel present.
	StateDayBlocked State = iota
	// StatePastCutoff: same-day slot after the cutoff hour, non-admin actor.
	StatePastCutoff
	// StateJuniorQuotaBlocked: junior actor shut out by the junior quota.
	StateJuniorQuotaBlocked
	// StateFull: capacity exhausted and the actor holds no reading.
	StateFull
	// StateAvailable: no restriction applies.
	StateAvailable
)

func (s State) String() string {
	switch s {
	case StateDayBlocked:
		return "day_blocked"
	case StatePastCutoff:
		return "past_cutoff"
	case StateJuniorQuotaBlocked:
		return "junior_quota_blocked"
	case StateFull:
		return "full"
	case StateAvailable:
		return "available"
	}
	return "unknown"
}

// Badge is the fixed presentation label for each state.
func (s State) Badge() string {
	switch s {
	case StateDayBlocked:
		return "BLOCKED"
	case StatePastCutoff:
		return fmt.Sprintf("CLOSED AFTER %02d:00", CutoffHour)
	case StateJuniorQuotaBlocked:
		return "JUNIOR LIMIT REACHED"
	case StateFull:
		return "FULL"
	case StateAvailable:
		return "AVAILABLE"
	}
	return ""
}

// Verdict is the derived eligibility outcome for one snapshot, actor and
// instant. It is recomputed on every snapshot or clock change and never
// persisted.
type Verdict struct {
	State State

	// CanReserve/CanCancel gate the ordinary admission commands.
	CanReserve bool
	CanCancel  bool

	// CanAdminAssign gates the admin assign affordance. Capacity is a hard
	// ceiling even for admins, so a full snapshot clears it.
	CanAdminAssign bool

	// SignedUp is the signed-up/not branch shown to the actor, after any
	// optimistic override has been applied.
	SignedUp bool

	Badge string

	// Warnings carries data-integrity notes (e.g. unknown occupant
	// seniority). Never fatal.
	Warnings []string
}
