package kanban

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"taskboard-api/internal/domain"
)

func genTasks(count int) []*domain.Task {
	tasks := make([]*domain.Task, count)
	base := time.Now()
	for i := 0; i < count; i++ {
		tasks[i] = &domain.Task{
			BaseModel: domain.BaseModel{ID: uuid.New(), CreatedAt: base.Add(time.Duration(i) * time.Second)},
			Status:    domain.ColumnOrder[i%len(domain.ColumnOrder)],
			Position:  i / len(domain.ColumnOrder),
		}
	}
	return tasks
}

// A valid move never loses or duplicates a task id: the multiset of ids
// across all columns is invariant under Apply.
func TestProperty_MovePreservesTaskSet(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("moves preserve the task id multiset", prop.ForAll(
		func(count, srcCol, dstCol, srcIdx, dstIdx int) bool {
			tasks := genTasks(count)
			order := FromTasks(tasks)

			source := domain.ColumnOrder[srcCol%len(domain.ColumnOrder)]
			dest := domain.ColumnOrder[dstCol%len(domain.ColumnOrder)]
			src := order.Column(source)
			if len(src) == 0 {
				return true
			}
			idx := srcIdx % len(src)

			move := Move{
				TaskID: src[idx],
				Source: source, SourceIdx: idx,
				Dest: dest, DestIdx: dstIdx % (len(order.Column(dest)) + 1),
			}
			if err := order.Apply(move); err != nil {
				return false
			}

			seen := make(map[uuid.UUID]int)
			total := 0
			for _, col := range domain.ColumnOrder {
				for _, id := range order.Column(col) {
					seen[id]++
					total++
				}
			}
			if total != count {
				return false
			}
			for _, n := range seen {
				if n != 1 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 40),
		gen.IntRange(0, 3),
		gen.IntRange(0, 3),
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

// Rolling back an optimistic move always restores the baseline exactly.
func TestProperty_RollbackRestoresBaseline(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("rollback after any move sequence is clean", prop.ForAll(
		func(count, moves int) bool {
			tasks := genTasks(count)
			r := NewReconciler(tasks)

			for i := 0; i < moves; i++ {
				source := domain.ColumnOrder[i%len(domain.ColumnOrder)]
				src := r.Local().Column(source)
				if len(src) == 0 {
					continue
				}
				dest := domain.ColumnOrder[(i+1)%len(domain.ColumnOrder)]
				_ = r.Apply(Move{
					TaskID: src[0],
					Source: source, SourceIdx: 0,
					Dest: dest, DestIdx: 0,
				})
			}

			r.Rollback()
			return !r.Dirty()
		},
		gen.IntRange(1, 30),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}
