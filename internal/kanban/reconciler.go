package kanban

import (
	"taskboard-api/internal/domain"
)

// Reconciler mirrors the server-authoritative column order and lets a
// caller apply optimistic moves on top of it. A move is either committed
// (the local state becomes the new baseline) or the whole local state is
// discarded and rebuilt from a fresh authoritative fetch. It never
// patches partially.
type Reconciler struct {
	authoritative Order
	local         Order
}

// NewReconciler builds a reconciler from an authoritative task list
func NewReconciler(tasks []*domain.Task) *Reconciler {
	order := FromTasks(tasks)
	return &Reconciler{
		authoritative: order,
		local:         order.Clone(),
	}
}

// Local returns the current optimistic view
func (r *Reconciler) Local() Order {
	return r.local
}

// Apply performs an optimistic move on the local view only
func (r *Reconciler) Apply(m Move) error {
	return r.local.Apply(m)
}

// Commit promotes the local view to the authoritative baseline after the
// server acknowledged the move.
func (r *Reconciler) Commit() {
	r.authoritative = r.local.Clone()
}

// Rollback discards the local view and restores the last known
// authoritative state.
func (r *Reconciler) Rollback() {
	r.local = r.authoritative.Clone()
}

// Resync replaces both views from a fresh authoritative fetch. This is
// the recovery path after a failed move: consistency is restored by full
// resync, not by operation-level undo.
func (r *Reconciler) Resync(tasks []*domain.Task) {
	r.authoritative = FromTasks(tasks)
	r.local = r.authoritative.Clone()
}

// Dirty reports whether the local view has diverged from the baseline
func (r *Reconciler) Dirty() bool {
	for col, ids := range r.local {
		base := r.authoritative[col]
		if len(ids) != len(base) {
			return true
		}
		for i := range ids {
			if ids[i] != base[i] {
				return true
			}
		}
	}
	return false
}
