package schedule

import (
	"github.com/mohamedeng1505/scheduler/internal/model"
)

// PendingCleanup lists the tasks staged by the expiry sweep and awaiting a
// keep-or-discard decision.
func (s *State) PendingCleanup() []model.Task {
	out := []model.Task{}
	for _, t := range s.Tasks {
		if t.PendingCleanup() {
			out = append(out, t)
		}
	}
	return out
}

// CleanupOpen reports whether the resolution surface should be showing: it
// stays open while at least one task is pending cleanup.
func (s *State) CleanupOpen() bool {
	for _, t := range s.Tasks {
		if t.PendingCleanup() {
			return true
		}
	}
	return false
}

// KeepPending restores one staged task to the unassigned pool. The task is
// not re-attached to a slot; the slot it came from no longer exists.
func (e *Engine) KeepPending(st *State, id model.TaskID) bool {
	idx := st.taskIndex(id)
	if idx < 0 || !st.Tasks[idx].PendingCleanup() {
		return false
	}
	st.Tasks[idx].Lifecycle = model.LifecycleActive
	st.Tasks[idx].AssignedSlotID = ""
	return true
}

// DiscardPending deletes one staged task.
func (e *Engine) DiscardPending(st *State, id model.TaskID) bool {
	idx := st.taskIndex(id)
	if idx < 0 || !st.Tasks[idx].PendingCleanup() {
		return false
	}
	st.Tasks = append(st.Tasks[:idx], st.Tasks[idx+1:]...)
	return true
}

// KeepAllPending restores every staged task, returning how many.
func (e *Engine) KeepAllPending(st *State) int {
	n := 0
	for i := range st.Tasks {
		if st.Tasks[i].PendingCleanup() {
			st.Tasks[i].Lifecycle = model.LifecycleActive
			st.Tasks[i].AssignedSlotID = ""
			n++
		}
	}
	return n
}

// DiscardAllPending deletes every staged task, returning how many.
func (e *Engine) DiscardAllPending(st *State) int {
	kept := st.Tasks[:0]
	n := 0
	for _, t := range st.Tasks {
		if t.PendingCleanup() {
			n++
			continue
		}
		kept = append(kept, t)
	}
	st.Tasks = kept
	return n
}
