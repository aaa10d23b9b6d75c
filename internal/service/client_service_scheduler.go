package service

import (
	"sort"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

// Schedule is the push order of one sync round.
type Schedule struct {
	// Ready holds the operations to push now, in push order.
	Ready []models.SyncOperation

	// Held holds operations waiting for their backoff delay and everything
	// that depends on them. They stay pending for a later round.
	Held []models.SyncOperation

	// Fallback is set when some dependency could not be satisfied (a cycle,
	// or a dependency on a failed operation) and the rest of the queue was
	// appended in arrival order.
	Fallback bool
}

// ScheduleOperations orders pending operations so that every operation comes
// after the operations it depends on.
//
// pending is expected in queue order (priority, then insertion). Ordering is
// done in rounds: each round places every operation whose dependencies are
// placed already. A dependency that is neither pending nor failed was
// acknowledged earlier and counts as placed. When a round places nothing, the
// remainder is appended in arrival order.
func ScheduleOperations(pending []models.SyncOperation, failed map[string]struct{}, now time.Time) Schedule {
	pendingIDs := make(map[string]struct{}, len(pending))
	for _, op := range pending {
		pendingIDs[op.ID] = struct{}{}
	}

	placed := make(map[string]struct{}, len(pending))
	satisfied := func(dep string) bool {
		if _, ok := placed[dep]; ok {
			return true
		}
		if _, ok := failed[dep]; ok {
			return false
		}
		_, isPending := pendingIDs[dep]
		return !isPending
	}

	var sched Schedule
	ordered := make([]models.SyncOperation, 0, len(pending))
	remaining := pending

	for len(remaining) > 0 {
		var next []models.SyncOperation
		for _, op := range remaining {
			if allSatisfied(op.Dependencies, satisfied) {
				ordered = append(ordered, op)
				placed[op.ID] = struct{}{}
				continue
			}
			next = append(next, op)
		}

		if len(next) == len(remaining) {
			sched.Fallback = true
			sort.SliceStable(next, func(i, j int) bool { return next[i].Seq < next[j].Seq })
			ordered = append(ordered, next...)
			break
		}
		remaining = next
	}

	held := holdBack(ordered, now)
	for _, op := range ordered {
		if _, ok := held[op.ID]; ok {
			sched.Held = append(sched.Held, op)
			continue
		}
		sched.Ready = append(sched.Ready, op)
	}

	return sched
}

func allSatisfied(deps []string, satisfied func(string) bool) bool {
	for _, dep := range deps {
		if !satisfied(dep) {
			return false
		}
	}
	return true
}

// holdBack returns the ids of operations that are not due yet and, until a
// fixed point, of operations depending on held ones.
func holdBack(ops []models.SyncOperation, now time.Time) map[string]struct{} {
	held := make(map[string]struct{})
	for _, op := range ops {
		if !op.DueAt(now) {
			held[op.ID] = struct{}{}
		}
	}

	for changed := len(held) > 0; changed; {
		changed = false
		for _, op := range ops {
			if _, ok := held[op.ID]; ok {
				continue
			}
			for _, dep := range op.Dependencies {
				if _, ok := held[dep]; ok {
					held[op.ID] = struct{}{}
					changed = true
					break
				}
			}
		}
	}

	return held
}

// partition splits ops into consecutive batches of at most size operations.
func partition(ops []models.SyncOperation, size int) [][]models.SyncOperation {
	if size <= 0 {
		size = defaultBatchSize
	}

	batches := make([][]models.SyncOperation, 0, (len(ops)+size-1)/size)
	for start := 0; start < len(ops); start += size {
		end := min(start+size, len(ops))
		batches = append(batches, ops[start:end])
	}
	return batches
}
