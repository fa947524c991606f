package schedule

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedeng1505/scheduler/internal/model"
)

func newTestHandler(t *testing.T) (*Handler, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	h := NewHandler(store, newTestEngine(), log.New(bytes.NewBuffer(nil), "", 0))
	return h, store
}

func postCommand(t *testing.T, h *Handler, cmd string, args map[string]any) (*httptest.ResponseRecorder, CommandResponse) {
	t.Helper()
	body, err := json.Marshal(CommandRequest{Cmd: cmd, Args: args})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/schedule/cmd", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Command(rec, req)

	var resp CommandResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func loadState(t *testing.T, store Store) *State {
	t.Helper()
	st, _, err := store.Load()
	require.NoError(t, err)
	return st
}

func TestCommand_SlotAndTaskFlow(t *testing.T) {
	h, store := newTestHandler(t)

	rec, resp := postCommand(t, h, "slot.create", map[string]any{
		"day": "Monday", "start": "09:00", "end": "11:00",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.OK)

	st := loadState(t, store)
	require.Len(t, st.Slots, 1)
	slotID := string(st.Slots[0].ID)
	assert.Equal(t, 2.0, st.Slots[0].Hours)

	rec, resp = postCommand(t, h, "task.add", map[string]any{
		"name": "Deep work", "duration": 1.5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.OK)

	st = loadState(t, store)
	require.Len(t, st.Tasks, 1)
	taskID := string(st.Tasks[0].ID)

	rec, resp = postCommand(t, h, "task.assign", map[string]any{
		"taskId": taskID, "slotId": slotID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.OK)

	st = loadState(t, store)
	got, found := st.Task(model.TaskID(taskID))
	require.True(t, found)
	assert.Equal(t, model.SlotID(slotID), got.AssignedSlotID)
}

func TestCommand_RejectionLeavesStateUntouched(t *testing.T) {
	h, store := newTestHandler(t)

	_, resp := postCommand(t, h, "slot.create", map[string]any{
		"day": "Monday", "start": "09:00", "end": "10:00",
	})
	require.True(t, resp.OK)
	before := loadState(t, store)

	rec, resp := postCommand(t, h, "slot.create", map[string]any{
		"day": "Monday", "start": "10:00", "end": "09:00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.Error)

	after := loadState(t, store)
	assert.Equal(t, before.Slots, after.Slots)
}

func TestCommand_MissingArgs(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, resp := postCommand(t, h, "task.add", map[string]any{"duration": 1.0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Error, "name")

	rec, resp = postCommand(t, h, "task.add", map[string]any{"name": "X", "duration": "long"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Error, "duration")

	rec, resp = postCommand(t, h, "does.not.exist", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Error, "unknown command")
}

func TestCommand_NormalizesAfterEveryMutation(t *testing.T) {
	h, store := newTestHandler(t)

	for i := 0; i < 2; i++ {
		_, resp := postCommand(t, h, "task.add", map[string]any{
			"name": "Same name", "duration": 1.0,
		})
		require.True(t, resp.OK)
	}

	st := loadState(t, store)
	require.Len(t, st.Tasks, 1, "identical unassigned tasks collapse")
	assert.Equal(t, 2.0, st.Tasks[0].Duration)
}

func TestCommand_ApplySlotList(t *testing.T) {
	h, store := newTestHandler(t)
	h.SetSlotListResolver(func(id string) (model.SavedSlotList, bool) {
		if id != "list-1" {
			return model.SavedSlotList{}, false
		}
		return model.SavedSlotList{
			ID:   "list-1",
			Name: "Weekday mornings",
			Slots: []model.Slot{
				{ID: "sl-a", Day: "Monday", Start: "08:00", End: "10:00"},
				{ID: "sl-b", Day: "Tuesday", Start: "08:00", End: "10:00"},
			},
		}, true
	})

	_, resp := postCommand(t, h, "slot.create", map[string]any{
		"day": "Friday", "start": "09:00", "end": "10:00",
	})
	require.True(t, resp.OK)
	st := loadState(t, store)
	oldSlot := st.Slots[0].ID
	_, resp = postCommand(t, h, "task.add", map[string]any{"name": "Held", "duration": 0.5})
	require.True(t, resp.OK)
	st = loadState(t, store)
	_, resp = postCommand(t, h, "task.assign", map[string]any{
		"taskId": string(st.Tasks[0].ID), "slotId": string(oldSlot),
	})
	require.True(t, resp.OK)

	rec, resp := postCommand(t, h, "schedule.apply_slot_list", map[string]any{"listId": "list-1"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.OK)

	st = loadState(t, store)
	require.Len(t, st.Slots, 2)
	assert.Equal(t, model.SlotID(""), st.Tasks[0].AssignedSlotID,
		"task survives the swap unassigned")

	rec, resp = postCommand(t, h, "schedule.apply_slot_list", map[string]any{"listId": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Error, "not found")
}

func TestCommand_CleanupFlow(t *testing.T) {
	h, store := newTestHandler(t)

	_, resp := postCommand(t, h, "slot.create", map[string]any{
		"day": "Monday", "start": "09:00", "end": "11:00",
	})
	require.True(t, resp.OK)
	st := loadState(t, store)
	slotID := string(st.Slots[0].ID)
	_, resp = postCommand(t, h, "task.add", map[string]any{"name": "Expired", "duration": 1.0})
	require.True(t, resp.OK)
	st = loadState(t, store)
	_, resp = postCommand(t, h, "task.assign", map[string]any{
		"taskId": string(st.Tasks[0].ID), "slotId": slotID,
	})
	require.True(t, resp.OK)

	// Stage the task directly, as a sweep over a passed Monday would.
	st = loadState(t, store)
	report := h.engine.Sweep(st, sweepNow)
	require.True(t, report.Changed())
	require.NoError(t, store.Save(st))

	taskID := string(report.StagedTaskIDs[0])
	rec, resp := postCommand(t, h, "cleanup.keep", map[string]any{"taskId": taskID})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.OK)

	st = loadState(t, store)
	kept, found := st.Task(model.TaskID(taskID))
	require.True(t, found)
	assert.False(t, kept.PendingCleanup())
	assert.False(t, st.CleanupOpen())

	rec, resp = postCommand(t, h, "cleanup.keep", map[string]any{"taskId": taskID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.OK)
}

func TestData(t *testing.T) {
	h, store := newTestHandler(t)
	e := h.engine
	st := loadState(t, store)
	slot := mustCreateSlot(t, e, st, "Monday", "09:00", "11:00")
	task := mustAddTask(t, e, st, "Visible", 1)
	_, ok := e.Assign(st, task.ID, slot.ID)
	require.True(t, ok)
	_, ok = e.AddNoTimeTask(st, "Flat")
	require.True(t, ok)
	require.NoError(t, store.Save(st))

	req := httptest.NewRequest(http.MethodGet, "/api/data", nil)
	rec := httptest.NewRecorder()
	h.Data(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DataResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Slots, 1)
	assert.Len(t, resp.Tasks, 2)
	assert.Equal(t, []string{"Flat"}, resp.NoTimeTasks)
	assert.Equal(t, 1.0, resp.Totals.TaskHours)
	assert.False(t, resp.CleanupOpen)
	assert.Empty(t, resp.PendingCleanup)

	rec = httptest.NewRecorder()
	h.Data(rec, httptest.NewRequest(http.MethodPost, "/api/data", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSync(t *testing.T) {
	h, store := newTestHandler(t)

	body := `{
		"slots": [{"id": "s1", "day": "Monday", "start": "09:00", "end": "10:00"}],
		"tasks": [
			{"id": "t1", "name": "Synced", "duration": 1, "assignedSlotId": "gone"},
			{"id": "t2", "name": "synced ", "duration": 0.5}
		],
		"noTimeTasks": ["From legacy"]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	h.Sync(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	st := loadState(t, store)
	require.Len(t, st.Slots, 1)
	assert.Equal(t, 1.0, st.Slots[0].Hours)

	// dangling ref cleared, then the two "synced" tasks collapse; plus the
	// migrated no-time task
	require.Len(t, st.Tasks, 2)
	assert.Equal(t, 1.5, st.Tasks[0].Duration)
	assert.True(t, st.Tasks[1].NoTime())

	// missing arrays are rejected
	rec = httptest.NewRecorder()
	h.Sync(rec, httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewReader([]byte(`{"slots": []}`))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSync_DropsNegativeDurations(t *testing.T) {
	h, store := newTestHandler(t)

	body := `{
		"slots": [{"id": "s1", "day": "Monday", "start": "09:00", "end": "10:00"}],
		"tasks": [{"id": "t1", "name": "Bogus", "duration": -5, "assignedSlotId": "s1"}],
		"noTimeTasks": []
	}`
	rec := httptest.NewRecorder()
	h.Sync(rec, httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewReader([]byte(body))))
	require.Equal(t, http.StatusOK, rec.Code)

	st := loadState(t, store)
	require.Empty(t, st.Tasks)
	assert.Equal(t, 1.0, RemainingCapacity(st, "s1"))

	// with the bogus task gone, an oversized task splits instead of fitting whole
	_, resp := postCommand(t, h, "task.add", map[string]any{"name": "Big", "duration": 6})
	require.True(t, resp.OK)
	st = loadState(t, store)
	require.Len(t, st.Tasks, 1)
	taskID := string(st.Tasks[0].ID)

	_, resp = postCommand(t, h, "task.assign", map[string]any{"taskId": taskID, "slotId": "s1"})
	require.True(t, resp.OK)
	st = loadState(t, store)
	for _, task := range st.Tasks {
		if task.AssignedSlotID == "s1" {
			assert.Equal(t, 1.0, task.Duration)
		}
	}
	assert.Equal(t, 0.0, RemainingCapacity(st, "s1"))
}
