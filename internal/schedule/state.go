package schedule

import (
	"github.com/mohamedeng1505/scheduler/internal/model"
)

// State holds the slot and task registries. It is an owned value: the store
// hands out copies, the engine mutates a copy, and the store swaps it back
// in on save. Nothing outside this package mutates it in place.
type State struct {
	Slots []model.Slot `json:"slots"`
	Tasks []model.Task `json:"tasks"`
}

func NewState() *State {
	return &State{
		Slots: []model.Slot{},
		Tasks: []model.Task{},
	}
}

// Clone returns an independent copy. Slots and tasks are value types, so
// copying the slices is enough.
func (s *State) Clone() *State {
	out := &State{
		Slots: make([]model.Slot, len(s.Slots)),
		Tasks: make([]model.Task, len(s.Tasks)),
	}
	copy(out.Slots, s.Slots)
	copy(out.Tasks, s.Tasks)
	return out
}

func (s *State) Slot(id model.SlotID) (model.Slot, bool) {
	for _, slot := range s.Slots {
		if slot.ID == id {
			return slot, true
		}
	}
	return model.Slot{}, false
}

func (s *State) slotIndex(id model.SlotID) int {
	for i, slot := range s.Slots {
		if slot.ID == id {
			return i
		}
	}
	return -1
}

func (s *State) Task(id model.TaskID) (model.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (s *State) taskIndex(id model.TaskID) int {
	for i, t := range s.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// sanitize repairs a state loaded from disk or received from a sync client:
// zero-value kind/lifecycle become their defaults, slot hours are recomputed,
// slots with an invalid time range are dropped, task references to missing
// slots are cleared, and timed tasks without a positive finite duration are
// dropped so capacity math stays sound.
func (s *State) sanitize() {
	slots := make([]model.Slot, 0, len(s.Slots))
	valid := make(map[model.SlotID]bool, len(s.Slots))
	for _, slot := range s.Slots {
		if slot.ID == "" || model.DayIndex(slot.Day) < 0 {
			continue
		}
		hours, ok := ComputeHours(slot.Start, slot.End)
		if !ok {
			continue
		}
		slot.Hours = hours
		slots = append(slots, slot)
		valid[slot.ID] = true
	}
	s.Slots = slots

	tasks := make([]model.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.ID == "" {
			continue
		}
		if t.Kind == "" {
			t.Kind = model.TaskKindNormal
		}
		if t.Lifecycle == "" {
			t.Lifecycle = model.LifecycleActive
		}
		if t.AssignedSlotID != "" && !valid[t.AssignedSlotID] {
			t.AssignedSlotID = ""
		}
		if t.NoTime() {
			t.Duration = 0
		} else {
			if !validDuration(t.Duration) {
				continue
			}
			t.Duration = RoundHours(t.Duration)
		}
		tasks = append(tasks, t)
	}
	s.Tasks = tasks
}
