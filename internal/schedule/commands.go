package schedule

import (
	"fmt"
	"time"

	"github.com/mohamedeng1505/scheduler/internal/model"
)

func getString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required field: %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %s must be a string", key)
	}
	return s, nil
}

// JSON numbers decode as float64.
func getFloat(args map[string]any, key string) (float64, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required field: %s", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("field %s must be a number", key)
	}
	return f, nil
}

func getStringSlice(args map[string]any, key string) ([]string, error) {
	v, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("missing required field: %s", key)
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("field %s must be an array of strings", key)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("field %s must be an array of strings", key)
		}
		out = append(out, s)
	}
	return out, nil
}

// slot.create { day, start, end }
func (h *Handler) cmdSlotCreate(st *State, args map[string]any) (any, error) {
	day, err := getString(args, "day")
	if err != nil {
		return nil, err
	}
	start, err := getString(args, "start")
	if err != nil {
		return nil, err
	}
	end, err := getString(args, "end")
	if err != nil {
		return nil, err
	}
	slot, ok := h.engine.CreateSlot(st, day, start, end)
	if !ok {
		return nil, fmt.Errorf("invalid slot: day %q with range %s-%s", day, start, end)
	}
	return map[string]any{"slot": slot}, nil
}

// slot.update { slotId, day, start, end }
func (h *Handler) cmdSlotUpdate(st *State, args map[string]any) (any, error) {
	id, err := getString(args, "slotId")
	if err != nil {
		return nil, err
	}
	day, err := getString(args, "day")
	if err != nil {
		return nil, err
	}
	start, err := getString(args, "start")
	if err != nil {
		return nil, err
	}
	end, err := getString(args, "end")
	if err != nil {
		return nil, err
	}
	if _, ok := st.Slot(model.SlotID(id)); !ok {
		return nil, fmt.Errorf("slot not found: %s", id)
	}
	if !h.engine.UpdateSlot(st, model.SlotID(id), day, start, end) {
		return nil, fmt.Errorf("invalid slot: day %q with range %s-%s", day, start, end)
	}
	slot, _ := st.Slot(model.SlotID(id))
	return map[string]any{"slot": slot}, nil
}

// slot.duplicate { slotId }
func (h *Handler) cmdSlotDuplicate(st *State, args map[string]any) (any, error) {
	id, err := getString(args, "slotId")
	if err != nil {
		return nil, err
	}
	slot, ok := h.engine.DuplicateSlot(st, model.SlotID(id))
	if !ok {
		return nil, fmt.Errorf("slot not found: %s", id)
	}
	return map[string]any{"slot": slot}, nil
}

// slot.bulk_duplicate { slotIds }
func (h *Handler) cmdSlotBulkDuplicate(st *State, args map[string]any) (any, error) {
	raw, err := getStringSlice(args, "slotIds")
	if err != nil {
		return nil, err
	}
	slotIDs := make([]model.SlotID, 0, len(raw))
	for _, s := range raw {
		slotIDs = append(slotIDs, model.SlotID(s))
	}
	n := h.engine.DuplicateSlots(st, slotIDs)
	return map[string]any{"duplicated": n}, nil
}

// slot.delete { slotIds }
func (h *Handler) cmdSlotDelete(st *State, args map[string]any) (any, error) {
	raw, err := getStringSlice(args, "slotIds")
	if err != nil {
		return nil, err
	}
	slotIDs := make([]model.SlotID, 0, len(raw))
	for _, s := range raw {
		slotIDs = append(slotIDs, model.SlotID(s))
	}
	if !h.engine.DeleteSlots(st, slotIDs) {
		return nil, fmt.Errorf("no matching slots")
	}
	return map[string]any{"deleted": len(slotIDs)}, nil
}

// task.add { name, duration }
func (h *Handler) cmdTaskAdd(st *State, args map[string]any) (any, error) {
	name, err := getString(args, "name")
	if err != nil {
		return nil, err
	}
	duration, err := getFloat(args, "duration")
	if err != nil {
		return nil, err
	}
	t, ok := h.engine.AddTask(st, name, duration)
	if !ok {
		return nil, fmt.Errorf("invalid task: name and a positive duration are required")
	}
	return map[string]any{"task": t}, nil
}

// task.add_no_time { name }
func (h *Handler) cmdTaskAddNoTime(st *State, args map[string]any) (any, error) {
	name, err := getString(args, "name")
	if err != nil {
		return nil, err
	}
	t, ok := h.engine.AddNoTimeTask(st, name)
	if !ok {
		return nil, fmt.Errorf("invalid task: name is required")
	}
	return map[string]any{"task": t}, nil
}

// task.edit { taskId, name, duration }
func (h *Handler) cmdTaskEdit(st *State, args map[string]any) (any, error) {
	id, err := getString(args, "taskId")
	if err != nil {
		return nil, err
	}
	name, err := getString(args, "name")
	if err != nil {
		return nil, err
	}
	duration, err := getFloat(args, "duration")
	if err != nil {
		return nil, err
	}
	if _, ok := st.Task(model.TaskID(id)); !ok {
		return nil, fmt.Errorf("task not found: %s", id)
	}
	if !h.engine.EditTask(st, model.TaskID(id), name, duration) {
		return nil, fmt.Errorf("edit rejected: invalid input or duration exceeds slot capacity")
	}
	t, _ := st.Task(model.TaskID(id))
	return map[string]any{"task": t}, nil
}

// task.delete { taskId }
func (h *Handler) cmdTaskDelete(st *State, args map[string]any) (any, error) {
	id, err := getString(args, "taskId")
	if err != nil {
		return nil, err
	}
	if !h.engine.DeleteTask(st, model.TaskID(id)) {
		return nil, fmt.Errorf("task not found: %s", id)
	}
	return map[string]any{"deleted": id}, nil
}

// task.assign { taskId, slotId }
func (h *Handler) cmdTaskAssign(st *State, args map[string]any) (any, error) {
	taskID, err := getString(args, "taskId")
	if err != nil {
		return nil, err
	}
	slotID, err := getString(args, "slotId")
	if err != nil {
		return nil, err
	}
	result, ok := h.engine.Assign(st, model.TaskID(taskID), model.SlotID(slotID))
	if !ok {
		return nil, fmt.Errorf("assignment rejected: no remaining capacity in slot %s", slotID)
	}
	return map[string]any{"assignment": result}, nil
}

// task.unassign { taskId }
func (h *Handler) cmdTaskUnassign(st *State, args map[string]any) (any, error) {
	id, err := getString(args, "taskId")
	if err != nil {
		return nil, err
	}
	if !h.engine.Unassign(st, model.TaskID(id)) {
		return nil, fmt.Errorf("task not found: %s", id)
	}
	return map[string]any{"unassigned": id}, nil
}

// task.merge { sourceTaskId, targetTaskId }
func (h *Handler) cmdTaskMerge(st *State, args map[string]any) (any, error) {
	sourceID, err := getString(args, "sourceTaskId")
	if err != nil {
		return nil, err
	}
	targetID, err := getString(args, "targetTaskId")
	if err != nil {
		return nil, err
	}
	merged, ok := h.engine.Merge(st, model.TaskID(sourceID), model.TaskID(targetID))
	if !ok {
		return nil, fmt.Errorf("merge rejected: tasks must exist and share a name")
	}
	return map[string]any{"task": merged}, nil
}

// task.toggle_postpone { taskId }
func (h *Handler) cmdTaskTogglePostpone(st *State, args map[string]any) (any, error) {
	id, err := getString(args, "taskId")
	if err != nil {
		return nil, err
	}
	if !h.engine.TogglePostpone(st, model.TaskID(id)) {
		return nil, fmt.Errorf("task not found: %s", id)
	}
	t, _ := st.Task(model.TaskID(id))
	return map[string]any{"task": t}, nil
}

// task.duplicate { taskId }
func (h *Handler) cmdTaskDuplicate(st *State, args map[string]any) (any, error) {
	id, err := getString(args, "taskId")
	if err != nil {
		return nil, err
	}
	t, ok := h.engine.DuplicateTask(st, model.TaskID(id))
	if !ok {
		return nil, fmt.Errorf("task not found: %s", id)
	}
	return map[string]any{"task": t}, nil
}

// cleanup.keep { taskId }
func (h *Handler) cmdCleanupKeep(st *State, args map[string]any) (any, error) {
	id, err := getString(args, "taskId")
	if err != nil {
		return nil, err
	}
	if !h.engine.KeepPending(st, model.TaskID(id)) {
		return nil, fmt.Errorf("task not pending cleanup: %s", id)
	}
	return map[string]any{"kept": id, "cleanupOpen": st.CleanupOpen()}, nil
}

// cleanup.discard { taskId }
func (h *Handler) cmdCleanupDiscard(st *State, args map[string]any) (any, error) {
	id, err := getString(args, "taskId")
	if err != nil {
		return nil, err
	}
	if !h.engine.DiscardPending(st, model.TaskID(id)) {
		return nil, fmt.Errorf("task not pending cleanup: %s", id)
	}
	return map[string]any{"discarded": id, "cleanupOpen": st.CleanupOpen()}, nil
}

// cleanup.keep_all {}
func (h *Handler) cmdCleanupKeepAll(st *State) (any, error) {
	n := h.engine.KeepAllPending(st)
	return map[string]any{"kept": n, "cleanupOpen": false}, nil
}

// cleanup.discard_all {}
func (h *Handler) cmdCleanupDiscardAll(st *State) (any, error) {
	n := h.engine.DiscardAllPending(st)
	return map[string]any{"discarded": n, "cleanupOpen": false}, nil
}

// schedule.reset {}
func (h *Handler) cmdScheduleReset(st *State) (any, error) {
	h.engine.Reset(st)
	return map[string]any{"reset": true}, nil
}

// schedule.empty_slots {}
func (h *Handler) cmdScheduleEmptySlots(st *State) (any, error) {
	n := h.engine.EmptySlots(st)
	return map[string]any{"unassigned": n}, nil
}

// schedule.apply_slot_list { listId }
func (h *Handler) cmdScheduleApplySlotList(st *State, args map[string]any) (any, error) {
	id, err := getString(args, "listId")
	if err != nil {
		return nil, err
	}
	if h.slotListResolver == nil {
		return nil, fmt.Errorf("slot lists unavailable")
	}
	list, ok := h.slotListResolver(id)
	if !ok {
		return nil, fmt.Errorf("slot list not found: %s", id)
	}
	h.engine.ReplaceSlots(st, list.Slots)
	return map[string]any{"applied": list.ID, "slots": len(st.Slots)}, nil
}

// sweep.run {}
func (h *Handler) cmdSweepRun(st *State) (any, error) {
	report := h.engine.Sweep(st, time.Now())
	return map[string]any{"sweep": report}, nil
}
