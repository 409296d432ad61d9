// Package reconcile tracks transient optimistic state between an admission
// command being dispatched and the next authoritative snapshot arriving.
//
// An override masks network latency: the instant a user reserves or cancels,
// the signed-up branch flips locally. The override lives at most one round
// trip: any fresh snapshot for the tuple unconditionally discards it, so the
// client can never permanently diverge from the server.
package reconcile

import (
	"sync"
	"time"

	"github.com/example/reading-portal/internal/domain/reading"
)

// Key scopes one override to one (user, department, date) tuple.
type Key struct {
	UserID       int64
	DepartmentID int64
	Date         reading.Date
}

// Entry is a pending optimistic flip.
type Entry struct {
	SignedUp bool
	Since    time.Time
}

// Tracker holds the pending overrides. The zero value is not usable; use
// NewTracker.
type Tracker struct {
	mu      sync.Mutex
	pending map[Key]Entry
}

func NewTracker() *Tracker {
	return &Tracker{pending: make(map[Key]Entry)}
}

// Begin records an optimistic flip at command dispatch: signedUp=true for
// reserve, false for cancel.
func (t *Tracker) Begin(k Key, signedUp bool, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[k] = Entry{SignedUp: signedUp, Since: now}
}

// Clear drops the override for k, if any. Called on command failure so the
// next render falls back to snapshot-derived truth.
func (t *Tracker) Clear(k Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.pending, k)
}

// Pending returns the override for k, or nil when the snapshot is
// authoritative.
func (t *Tracker) Pending(k Key) *bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.pending[k]
	if !ok {
		return nil
	}
	v := e.SignedUp
	return &v
}

// ObserveSnapshot notes that a fresh authoritative snapshot arrived for one
// department+date and discards every override scoped to it, for any user.
// Success or unrelated refetch makes no difference; the snapshot alone is
// truth again.
func (t *Tracker) ObserveSnapshot(departmentID int64, date reading.Date) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k := range t.pending {
		if k.DepartmentID == departmentID && k.Date.Equal(date) {
			delete(t.pending, k)
		}
	}
}

// Len reports the number of pending overrides. Diagnostics only.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}
