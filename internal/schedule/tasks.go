package schedule

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/mohamedeng1505/scheduler/internal/model"
)

// AddTask creates an unassigned task. Rejected when the trimmed name is
// empty or the duration is not a positive finite number.
func (e *Engine) AddTask(st *State, name string, duration float64) (model.Task, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || !validDuration(duration) {
		return model.Task{}, false
	}
	t := model.Task{
		ID:        model.TaskID(e.ids.NextID("task")),
		Name:      trimmed,
		Duration:  RoundHours(duration),
		Kind:      model.TaskKindNormal,
		Lifecycle: model.LifecycleActive,
	}
	st.Tasks = append(st.Tasks, t)
	return t, true
}

// AddNoTimeTask creates a zero-duration task that never occupies a slot.
func (e *Engine) AddNoTimeTask(st *State, name string) (model.Task, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return model.Task{}, false
	}
	t := model.Task{
		ID:        model.TaskID(e.ids.NextID("task")),
		Name:      trimmed,
		Kind:      model.TaskKindNoTime,
		Lifecycle: model.LifecycleActive,
	}
	st.Tasks = append(st.Tasks, t)
	return t, true
}

// EditTask renames a task and changes its duration. Rejected under the same
// input validation as AddTask, and additionally when the task is assigned
// and the new duration would overflow its slot.
func (e *Engine) EditTask(st *State, id model.TaskID, name string, duration float64) bool {
	idx := st.taskIndex(id)
	if idx < 0 {
		return false
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || !validDuration(duration) {
		return false
	}
	t := st.Tasks[idx]
	if t.AssignedSlotID != "" {
		available := RemainingCapacity(st, t.AssignedSlotID, t.ID)
		if duration > available {
			return false
		}
	}
	t.Name = trimmed
	t.Duration = RoundHours(duration)
	st.Tasks[idx] = t
	return true
}

// DeleteTask removes a task by id.
func (e *Engine) DeleteTask(st *State, id model.TaskID) bool {
	idx := st.taskIndex(id)
	if idx < 0 {
		return false
	}
	st.Tasks = append(st.Tasks[:idx], st.Tasks[idx+1:]...)
	return true
}

// TogglePostpone flips the postponed flag. The task's slot assignment is
// left untouched: a postponed task is hidden from active views and totals
// but still occupies its slot.
func (e *Engine) TogglePostpone(st *State, id model.TaskID) bool {
	idx := st.taskIndex(id)
	if idx < 0 {
		return false
	}
	st.Tasks[idx].Postponed = !st.Tasks[idx].Postponed
	return true
}

// DuplicateTask clones a task under a new id. Copies always land in the
// unassigned pool, not postponed, and get the next free " (n)" name suffix
// so normalization does not immediately fold the copy back into the
// original.
func (e *Engine) DuplicateTask(st *State, id model.TaskID) (model.Task, bool) {
	t, ok := st.Task(id)
	if !ok {
		return model.Task{}, false
	}
	copyTask := t
	copyTask.ID = model.TaskID(e.ids.NextID("task"))
	copyTask.Name = nextDuplicateName(st, t.Name)
	copyTask.AssignedSlotID = ""
	copyTask.Postponed = false
	st.Tasks = append(st.Tasks, copyTask)
	return copyTask, true
}

// Reset clears both registries.
func (e *Engine) Reset(st *State) {
	st.Slots = []model.Slot{}
	st.Tasks = []model.Task{}
}

// EmptySlots unassigns every task without touching the slots. Returns the
// number of tasks released.
func (e *Engine) EmptySlots(st *State) int {
	n := 0
	for i := range st.Tasks {
		if st.Tasks[i].AssignedSlotID != "" {
			st.Tasks[i].AssignedSlotID = ""
			n++
		}
	}
	return n
}

// MigrateLegacyNoTime converts legacy no-time task names into tasks, unless
// a no-time task with the same case-insensitive name already exists. Safe
// to run on every load.
func (e *Engine) MigrateLegacyNoTime(st *State, names []string) int {
	existing := make(map[string]bool)
	for _, t := range st.Tasks {
		if t.NoTime() {
			existing[strings.ToLower(strings.TrimSpace(t.Name))] = true
		}
	}
	migrated := 0
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if existing[key] {
			continue
		}
		if _, ok := e.AddNoTimeTask(st, trimmed); ok {
			existing[key] = true
			migrated++
		}
	}
	return migrated
}

func validDuration(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0) && d > 0
}

var duplicateSuffixRe = regexp.MustCompile(`^(.*)\s\((\d+)\)$`)

// nextDuplicateName strips any existing " (n)" suffix from the name and
// returns the lowest-numbered variant not already taken.
func nextDuplicateName(st *State, original string) string {
	base := strings.TrimSpace(original)
	if m := duplicateSuffixRe.FindStringSubmatch(base); m != nil {
		base = strings.TrimSpace(m[1])
	}
	taken := make(map[string]bool, len(st.Tasks))
	for _, t := range st.Tasks {
		taken[strings.TrimSpace(t.Name)] = true
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", base, n)
		if !taken[candidate] {
			return candidate
		}
	}
}
