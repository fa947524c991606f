package schedule

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedeng1505/scheduler/internal/model"
)

func TestCreateSlot(t *testing.T) {
	e := newTestEngine()
	st := NewState()

	slot, ok := e.CreateSlot(st, "Monday", "09:00", "10:30")
	require.True(t, ok)
	assert.Equal(t, 1.5, slot.Hours)

	_, ok = e.CreateSlot(st, "Funday", "09:00", "10:00")
	assert.False(t, ok)
	_, ok = e.CreateSlot(st, "Monday", "10:00", "09:00")
	assert.False(t, ok)
	_, ok = e.CreateSlot(st, "Monday", "10:00", "10:00")
	assert.False(t, ok)
	assert.Len(t, st.Slots, 1)
}

func TestUpdateSlot(t *testing.T) {
	e := newTestEngine()
	st := NewState()
	slot := mustCreateSlot(t, e, st, "Monday", "09:00", "10:00")

	require.True(t, e.UpdateSlot(st, slot.ID, "Tuesday", "14:00", "16:00"))
	got, _ := st.Slot(slot.ID)
	assert.Equal(t, "Tuesday", got.Day)
	assert.Equal(t, 2.0, got.Hours)

	assert.False(t, e.UpdateSlot(st, slot.ID, "Tuesday", "16:00", "14:00"))
	got, _ = st.Slot(slot.ID)
	assert.Equal(t, 2.0, got.Hours, "rejected update must not apply")

	assert.False(t, e.UpdateSlot(st, "missing", "Monday", "09:00", "10:00"))
}

func TestDuplicateSlots(t *testing.T) {
	e := newTestEngine()
	st := NewState()
	a := mustCreateSlot(t, e, st, "Monday", "09:00", "10:00")
	b := mustCreateSlot(t, e, st, "Tuesday", "09:00", "11:00")

	copyA, ok := e.DuplicateSlot(st, a.ID)
	require.True(t, ok)
	assert.NotEqual(t, a.ID, copyA.ID)
	assert.Equal(t, a.Day, copyA.Day)
	assert.Equal(t, a.Hours, copyA.Hours)

	n := e.DuplicateSlots(st, []model.SlotID{a.ID, b.ID, "missing"})
	assert.Equal(t, 2, n)
	assert.Len(t, st.Slots, 5)
}

func TestDeleteSlots_RemovesAssignedTasks(t *testing.T) {
	e := newTestEngine()
	st := NewState()
	doomed := mustCreateSlot(t, e, st, "Monday", "09:00", "10:00")
	kept := mustCreateSlot(t, e, st, "Tuesday", "09:00", "10:00")

	victim := mustAddTask(t, e, st, "Victim", 0.5)
	survivor := mustAddTask(t, e, st, "Survivor", 0.5)
	free := mustAddTask(t, e, st, "Free", 0.5)
	_, ok := e.Assign(st, victim.ID, doomed.ID)
	require.True(t, ok)
	_, ok = e.Assign(st, survivor.ID, kept.ID)
	require.True(t, ok)

	require.True(t, e.DeleteSlots(st, []model.SlotID{doomed.ID}))

	_, found := st.Task(victim.ID)
	assert.False(t, found, "manual slot delete removes its tasks")
	_, found = st.Task(survivor.ID)
	assert.True(t, found)
	_, found = st.Task(free.ID)
	assert.True(t, found)

	assert.False(t, e.DeleteSlots(st, []model.SlotID{"missing"}))
	assert.False(t, e.DeleteSlots(st, nil))
}

func TestReplaceSlots_RepairsDanglingReferences(t *testing.T) {
	e := newTestEngine()
	st := NewState()
	old := mustCreateSlot(t, e, st, "Monday", "09:00", "10:00")
	task := mustAddTask(t, e, st, "Carry over", 0.5)
	_, ok := e.Assign(st, task.ID, old.ID)
	require.True(t, ok)

	e.ReplaceSlots(st, []model.Slot{
		{ID: "ext-1", Day: "Wednesday", Start: "08:00", End: "09:30", Hours: 99},
		{Day: "Funday", Start: "08:00", End: "09:00"},
		{Day: "Thursday", Start: "09:00", End: "08:00"},
	})

	require.Len(t, st.Slots, 1, "invalid incoming slots are dropped")
	assert.Equal(t, 1.5, st.Slots[0].Hours, "hours recomputed, not trusted")

	got, _ := st.Task(task.ID)
	assert.Equal(t, model.SlotID(""), got.AssignedSlotID,
		"applying a list unassigns rather than deletes")
	_, found := st.Task(task.ID)
	assert.True(t, found)
}

func TestStateSanitize(t *testing.T) {
	st := &State{
		Slots: []model.Slot{
			{ID: "s1", Day: "Monday", Start: "09:00", End: "10:00", Hours: 42},
			{ID: "s2", Day: "Nowhere", Start: "09:00", End: "10:00"},
			{ID: "", Day: "Monday", Start: "09:00", End: "10:00"},
		},
		Tasks: []model.Task{
			{ID: "t1", Name: "Linked", Duration: 1, AssignedSlotID: "s1"},
			{ID: "t2", Name: "Dangling", Duration: 1, AssignedSlotID: "s2"},
			{ID: "", Name: "No id", Duration: 1},
		},
	}
	st.sanitize()

	require.Len(t, st.Slots, 1)
	assert.Equal(t, 1.0, st.Slots[0].Hours)

	require.Len(t, st.Tasks, 2)
	assert.Equal(t, model.SlotID("s1"), st.Tasks[0].AssignedSlotID)
	assert.Equal(t, model.SlotID(""), st.Tasks[1].AssignedSlotID)
	for _, task := range st.Tasks {
		assert.Equal(t, model.TaskKindNormal, task.Kind)
		assert.Equal(t, model.LifecycleActive, task.Lifecycle)
	}
}

func TestStateSanitize_DropsInvalidDurations(t *testing.T) {
	st := &State{
		Slots: []model.Slot{
			{ID: "s1", Day: "Monday", Start: "09:00", End: "10:00"},
		},
		Tasks: []model.Task{
			{ID: "t1", Name: "Negative", Duration: -5, AssignedSlotID: "s1"},
			{ID: "t2", Name: "Zero", Duration: 0},
			{ID: "t3", Name: "NaN", Duration: math.NaN()},
			{ID: "t4", Name: "Kept", Duration: 1.256},
			{ID: "t5", Name: "Untimed", Duration: -2, Kind: model.TaskKindNoTime},
		},
	}
	st.sanitize()

	require.Len(t, st.Tasks, 2)
	assert.Equal(t, model.TaskID("t4"), st.Tasks[0].ID)
	assert.Equal(t, 1.26, st.Tasks[0].Duration)
	assert.Equal(t, model.TaskID("t5"), st.Tasks[1].ID)
	assert.Equal(t, 0.0, st.Tasks[1].Duration)

	// A bogus duration must never leak into capacity math.
	assert.Equal(t, 1.0, RemainingCapacity(st, "s1"))
}
