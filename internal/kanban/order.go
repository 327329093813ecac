// Package kanban maintains the per-board, per-column ordered view of task
// ids and the reconciliation of optimistic moves against the
// server-authoritative task list.
package kanban

import (
	"sort"

	"github.com/google/uuid"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/response"
)

// Order is an ordered sequence of task ids per column. It is never stored;
// it is recomputed from each task's status and position.
type Order map[domain.TaskStatus][]uuid.UUID

// FromTasks derives the column order from an authoritative task list,
// sorting by position ascending within each column. Ties break by
// creation time so the derived order is deterministic.
func FromTasks(tasks []*domain.Task) Order {
	byColumn := make(map[domain.TaskStatus][]*domain.Task)
	for _, t := range tasks {
		byColumn[t.Status] = append(byColumn[t.Status], t)
	}

	order := make(Order, len(domain.ColumnOrder))
	for _, col := range domain.ColumnOrder {
		order[col] = []uuid.UUID{}
	}
	for col, colTasks := range byColumn {
		sort.SliceStable(colTasks, func(i, j int) bool {
			if colTasks[i].Position != colTasks[j].Position {
				return colTasks[i].Position < colTasks[j].Position
			}
			return colTasks[i].CreatedAt.Before(colTasks[j].CreatedAt)
		})
		ids := make([]uuid.UUID, len(colTasks))
		for i, t := range colTasks {
			ids[i] = t.ID
		}
		order[col] = ids
	}
	return order
}

// Clone returns a deep copy of the order
func (o Order) Clone() Order {
	out := make(Order, len(o))
	for col, ids := range o {
		cp := make([]uuid.UUID, len(ids))
		copy(cp, ids)
		out[col] = cp
	}
	return out
}

// Column returns the ordered task ids of a column
func (o Order) Column(col domain.TaskStatus) []uuid.UUID {
	return o[col]
}

// Move describes a single drag-and-drop operation
type Move struct {
	TaskID    uuid.UUID
	Source    domain.TaskStatus
	Dest      domain.TaskStatus
	SourceIdx int
	DestIdx   int
}

// Apply performs the move on the order in place. Same column and
// unchanged index is a no-op. Any column-to-column transition is
// permitted; the board is a surface, not a workflow gate.
func (o Order) Apply(m Move) error {
	if !m.Source.IsValid() || !m.Dest.IsValid() {
		return response.NewValidationError("Unknown column", "")
	}
	src := o[m.Source]
	if m.SourceIdx < 0 || m.SourceIdx >= len(src) {
		return response.NewValidationError("Source index out of range", "")
	}
	if src[m.SourceIdx] != m.TaskID {
		return response.NewValidationError("Task is not at the expected source index", "")
	}
	if m.Source == m.Dest && m.SourceIdx == m.DestIdx {
		return nil
	}

	// Remove from source, then insert at the destination index. The
	// destination index is interpreted against the column after removal
	// when moving within the same column, matching splice semantics.
	o[m.Source] = append(src[:m.SourceIdx], src[m.SourceIdx+1:]...)

	dst := o[m.Dest]
	idx := m.DestIdx
	if idx < 0 {
		idx = 0
	}
	if idx > len(dst) {
		idx = len(dst)
	}
	dst = append(dst, uuid.Nil)
	copy(dst[idx+1:], dst[idx:])
	dst[idx] = m.TaskID
	o[m.Dest] = dst
	return nil
}

// RealIndex maps a drop at a visible index back to an index in the full
// column when a filter hides some tasks. visible must preserve the
// relative order of column. Dropping past the end of the visible list
// lands after the last visible task; dropping at the start of a non-empty
// visible list lands at the position of the first visible task.
func RealIndex(column, visible []uuid.UUID, visibleIdx int) int {
	if len(visible) == 0 {
		return len(column)
	}
	if visibleIdx <= 0 {
		return indexOf(column, visible[0])
	}
	if visibleIdx >= len(visible) {
		return indexOf(column, visible[len(visible)-1]) + 1
	}
	// The drop displaces the visible item currently occupying that slot.
	return indexOf(column, visible[visibleIdx])
}

func indexOf(ids []uuid.UUID, id uuid.UUID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return len(ids)
}
