package reading

import (
	"time"

	"github.com/example/reading-portal/internal/domain/user"
)

// Input carries everything Evaluate needs. Now comes from an explicit clock
// source; the engine never reads the wall clock itself.
type Input struct {
	Snapshot Snapshot

	// Actor is the acting user, nil when unauthenticated.
	Actor *user.User

	Now time.Time

	// Pending, when non-nil, is the optimistic override for this
	// (actor, department, date) tuple: it substitutes the "actor holds a
	// reading in this snapshot" fact until the next authoritative snapshot
	// clears it. It never short-circuits the rule chain.
	Pending *bool
}

type evalCtx struct {
	in          Input
	admin       bool
	signedUp    bool
	juniorCount int
}

// rules is the ordered eligibility rule list: first match wins. The order is
// part of the contract. A blocked day outranks the cutoff because it is a
// structural property independent of time.
var rules = []struct {
	state   State
	applies func(*evalCtx) bool
}{
	{StateDayBlocked, func(c *evalCtx) bool {
		return BlackoutDay(c.in.Snapshot.Date.Weekday()) || c.in.Snapshot.Blocked()
	}},
	{StatePastCutoff, func(c *evalCtx) bool {
		if c.admin {
			return false
		}
		return c.in.Snapshot.Date.Equal(DateOf(c.in.Now)) && c.in.Now.Hour() >= CutoffHour
	}},
	{StateJuniorQuotaBlocked, func(c *evalCtx) bool {
		if c.admin || c.signedUp || c.in.Actor == nil {
			return false
		}
		return c.in.Actor.Seniority == user.SeniorityJunior && c.juniorCount >= JuniorQuota
	}},
	{StateFull, func(c *evalCtx) bool {
		return c.in.Snapshot.Full() && !c.signedUp
	}},
	{StateAvailable, func(c *evalCtx) bool { return true }},
}

// Evaluate classifies the slot and derives what the actor may do right now.
// It is pure: same input, same verdict.
func Evaluate(in Input) Verdict {
	c := &evalCtx{
		in:    in,
		admin: user.IsAdmin(in.Actor),
	}
	if in.Actor != nil {
		if in.Pending != nil {
			c.signedUp = *in.Pending
		} else {
			c.signedUp = in.Snapshot.Contains(in.Actor.ID)
		}
	}

	var warnings []string
	c.juniorCount, warnings = in.Snapshot.JuniorCount()

	state := StateAvailable
	for _, r := range rules {
		if r.applies(c) {
			state = r.state
			break
		}
	}

	v := Verdict{
		State:    state,
		SignedUp: c.signedUp,
		Badge:    state.Badge(),
		Warnings: warnings,
	}

	switch state {
	case StateAvailable:
		v.CanReserve = in.Actor != nil && !c.signedUp
		v.CanCancel = c.signedUp
	case StateDayBlocked:
		// Ordinary reserve/cancel stay disabled; an admin may still
		// remove an existing reading.
		v.CanCancel = c.admin && c.signedUp
	case StatePastCutoff, StateJuniorQuotaBlocked, StateFull:
		// Nothing actionable for this actor.
	}

	// The assign affordance survives every state but Full: capacity is a
	// hard ceiling even for admins.
	v.CanAdminAssign = c.admin && !in.Snapshot.Full()

	return v
}
