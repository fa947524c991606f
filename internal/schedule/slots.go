package schedule

import (
	"github.com/mohamedeng1505/scheduler/internal/model"
)

// CreateSlot adds a slot after recomputing its hours. Rejected when the day
// name is unknown or the time range is invalid.
func (e *Engine) CreateSlot(st *State, day, start, end string) (model.Slot, bool) {
	if model.DayIndex(day) < 0 {
		return model.Slot{}, false
	}
	hours, ok := ComputeHours(start, end)
	if !ok {
		return model.Slot{}, false
	}
	slot := model.Slot{
		ID:    model.SlotID(e.ids.NextID("slot")),
		Day:   day,
		Start: start,
		End:   end,
		Hours: hours,
	}
	st.Slots = append(st.Slots, slot)
	return slot, true
}

// UpdateSlot replaces a slot in place by id, keeping its position in the
// registry. Same validation as CreateSlot; unknown ids are a no-op.
func (e *Engine) UpdateSlot(st *State, id model.SlotID, day, start, end string) bool {
	idx := st.slotIndex(id)
	if idx < 0 {
		return false
	}
	if model.DayIndex(day) < 0 {
		return false
	}
	hours, ok := ComputeHours(start, end)
	if !ok {
		return false
	}
	st.Slots[idx] = model.Slot{
		ID:    id,
		Day:   day,
		Start: start,
		End:   end,
		Hours: hours,
	}
	return true
}

// DuplicateSlot clones a slot under a new id.
func (e *Engine) DuplicateSlot(st *State, id model.SlotID) (model.Slot, bool) {
	slot, ok := st.Slot(id)
	if !ok {
		return model.Slot{}, false
	}
	copySlot := slot
	copySlot.ID = model.SlotID(e.ids.NextID("slot"))
	st.Slots = append(st.Slots, copySlot)
	return copySlot, true
}

// DuplicateSlots clones every existing slot in ids, returning the number of
// copies made.
func (e *Engine) DuplicateSlots(st *State, ids []model.SlotID) int {
	want := make(map[model.SlotID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	copies := make([]model.Slot, 0, len(ids))
	for _, slot := range st.Slots {
		if !want[slot.ID] {
			continue
		}
		copySlot := slot
		copySlot.ID = model.SlotID(e.ids.NextID("slot"))
		copies = append(copies, copySlot)
	}
	st.Slots = append(st.Slots, copies...)
	return len(copies)
}

// DeleteSlots removes the named slots and the tasks currently assigned to
// them (the manual-delete path). Returns false when no slot matched.
func (e *Engine) DeleteSlots(st *State, ids []model.SlotID) bool {
	return e.removeSlots(st, ids, true)
}

// removeSlots drops slots by id. When deleteAssigned is set, tasks assigned
// to a removed slot are removed with it; otherwise their slot reference is
// cleared so no task is left pointing at a missing slot.
func (e *Engine) removeSlots(st *State, ids []model.SlotID, deleteAssigned bool) bool {
	if len(ids) == 0 {
		return false
	}
	idSet := make(map[model.SlotID]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	before := len(st.Slots)
	kept := st.Slots[:0]
	for _, slot := range st.Slots {
		if !idSet[slot.ID] {
			kept = append(kept, slot)
		}
	}
	st.Slots = kept
	if len(st.Slots) == before {
		return false
	}

	if deleteAssigned {
		tasks := st.Tasks[:0]
		for _, t := range st.Tasks {
			if t.AssignedSlotID != "" && idSet[t.AssignedSlotID] {
				continue
			}
			tasks = append(tasks, t)
		}
		st.Tasks = tasks
	} else {
		for i := range st.Tasks {
			if st.Tasks[i].AssignedSlotID != "" && idSet[st.Tasks[i].AssignedSlotID] {
				st.Tasks[i].AssignedSlotID = ""
			}
		}
	}
	return true
}

// ReplaceSlots swaps in a new slot collection (applying a saved slot list).
// Incoming slots are validated the same way as creation; tasks whose slot
// disappears are returned to the unassigned pool rather than deleted.
func (e *Engine) ReplaceSlots(st *State, slots []model.Slot) {
	next := make([]model.Slot, 0, len(slots))
	valid := make(map[model.SlotID]bool, len(slots))
	for _, slot := range slots {
		if slot.ID == "" {
			slot.ID = model.SlotID(e.ids.NextID("slot"))
		}
		if model.DayIndex(slot.Day) < 0 {
			continue
		}
		hours, ok := ComputeHours(slot.Start, slot.End)
		if !ok {
			continue
		}
		slot.Hours = hours
		next = append(next, slot)
		valid[slot.ID] = true
	}
	st.Slots = next

	for i := range st.Tasks {
		if st.Tasks[i].AssignedSlotID != "" && !valid[st.Tasks[i].AssignedSlotID] {
			st.Tasks[i].AssignedSlotID = ""
		}
	}
}
