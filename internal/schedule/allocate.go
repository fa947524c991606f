package schedule

import (
	"strings"

	"github.com/mohamedeng1505/scheduler/internal/model"
)

// RemainingCapacity returns the hours still free in a slot, ignoring the
// tasks named in exclude. Never negative; an unknown slot has no capacity.
// Postponed tasks keep their assignment and still count against the slot.
func RemainingCapacity(st *State, slotID model.SlotID, exclude ...model.TaskID) float64 {
	slot, ok := st.Slot(slotID)
	if !ok {
		return 0
	}
	skip := make(map[model.TaskID]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	used := 0.0
	for _, t := range st.Tasks {
		if t.AssignedSlotID != slotID || skip[t.ID] {
			continue
		}
		used += t.Duration
	}
	remaining := RoundHours(slot.Hours - used)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AssignResult reports what an Assign call did. Placed is the task now
// occupying the slot; when the task was split, Remainder names the
// unassigned leftover (empty when the original was exactly consumed).
type AssignResult struct {
	Placed    model.TaskID `json:"placed"`
	Remainder model.TaskID `json:"remainder,omitempty"`
	Split     bool         `json:"split"`
}

// Assign binds a task to a slot, splitting it when only part fits.
//
// Policy, in order:
//  1. duration <= available: assign the whole task. Exact fits take this
//     branch, never the split.
//  2. available <= 0: reject, nothing changes.
//  3. otherwise split: a new task with duration = available takes the slot;
//     the original keeps the rounded remainder back in the unassigned pool,
//     or is removed entirely when the remainder is <= 0.
func (e *Engine) Assign(st *State, taskID model.TaskID, slotID model.SlotID) (AssignResult, bool) {
	idx := st.taskIndex(taskID)
	if idx < 0 {
		return AssignResult{}, false
	}
	if _, ok := st.Slot(slotID); !ok {
		return AssignResult{}, false
	}
	t := st.Tasks[idx]
	if !t.Schedulable() {
		return AssignResult{}, false
	}

	available := RemainingCapacity(st, slotID, taskID)
	if t.Duration <= available {
		st.Tasks[idx].AssignedSlotID = slotID
		return AssignResult{Placed: taskID}, true
	}
	if available <= 0 {
		return AssignResult{}, false
	}

	remainder := RoundHours(t.Duration - available)
	placed := t
	placed.ID = model.TaskID(e.ids.NextID("task"))
	placed.Duration = available
	placed.AssignedSlotID = slotID
	placed.Postponed = false

	if remainder > 0 {
		st.Tasks[idx].Duration = remainder
		st.Tasks[idx].AssignedSlotID = ""
		st.Tasks = append(st.Tasks, placed)
		return AssignResult{Placed: placed.ID, Remainder: t.ID, Split: true}, true
	}

	st.Tasks = append(st.Tasks[:idx], st.Tasks[idx+1:]...)
	st.Tasks = append(st.Tasks, placed)
	return AssignResult{Placed: placed.ID, Split: true}, true
}

// Unassign returns a task to the unassigned pool. Succeeds whenever the
// task exists, whether or not it was assigned.
func (e *Engine) Unassign(st *State, taskID model.TaskID) bool {
	idx := st.taskIndex(taskID)
	if idx < 0 {
		return false
	}
	st.Tasks[idx].AssignedSlotID = ""
	return true
}

// Merge folds the source task into the target when their trimmed names
// match case-insensitively. The target keeps its identity and name; the
// durations are summed; the slot is the target's if it has one, else the
// source's; postponed is ORed. A merge whose result no longer fits the
// chosen slot is demoted to unassigned rather than rejected; merge never
// fails once the name gate passes.
func (e *Engine) Merge(st *State, sourceID, targetID model.TaskID) (model.Task, bool) {
	if sourceID == targetID {
		return model.Task{}, false
	}
	srcIdx := st.taskIndex(sourceID)
	tgtIdx := st.taskIndex(targetID)
	if srcIdx < 0 || tgtIdx < 0 {
		return model.Task{}, false
	}
	src := st.Tasks[srcIdx]
	tgt := st.Tasks[tgtIdx]
	if !src.Schedulable() || !tgt.Schedulable() {
		return model.Task{}, false
	}
	srcName := strings.ToLower(strings.TrimSpace(src.Name))
	tgtName := strings.ToLower(strings.TrimSpace(tgt.Name))
	if srcName == "" || srcName != tgtName {
		return model.Task{}, false
	}

	merged := tgt
	merged.Duration = RoundHours(src.Duration + tgt.Duration)
	merged.Postponed = src.Postponed || tgt.Postponed
	if merged.AssignedSlotID == "" {
		merged.AssignedSlotID = src.AssignedSlotID
	}
	if merged.AssignedSlotID != "" {
		available := RemainingCapacity(st, merged.AssignedSlotID, sourceID, targetID)
		if merged.Duration > available {
			merged.AssignedSlotID = ""
		}
	}

	st.Tasks[tgtIdx] = merged
	st.Tasks = append(st.Tasks[:srcIdx], st.Tasks[srcIdx+1:]...)
	return merged, true
}
