package schedule

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/mohamedeng1505/scheduler/internal/model"
)

// Handler serves the schedule API. All mutations (sync, commands, and the
// sweep) run under one mutex, so assignment decisions never interleave
// with a concurrent read-then-write of slot capacity.
type Handler struct {
	mu               sync.Mutex
	store            Store
	engine           *Engine
	logger           *log.Logger
	slotListResolver func(id string) (model.SavedSlotList, bool)
}

func NewHandler(store Store, engine *Engine, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{store: store, engine: engine, logger: logger}
}

// SetSlotListResolver wires the saved slot-list lookup used by the
// schedule.apply_slot_list command.
func (h *Handler) SetSlotListResolver(fn func(id string) (model.SavedSlotList, bool)) {
	h.slotListResolver = fn
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// DataResponse is the full schedule document for GET /api/data.
type DataResponse struct {
	Slots          []model.Slot `json:"slots"`
	Tasks          []model.Task `json:"tasks"`
	NoTimeTasks    []string     `json:"noTimeTasks"`
	Totals         Totals       `json:"totals"`
	CleanupOpen    bool         `json:"cleanupOpen"`
	PendingCleanup []model.Task `json:"pendingCleanupTasks"`
}

// GET /api/data
func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	st, _, err := h.store.Load()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, DataResponse{
		Slots:          st.Slots,
		Tasks:          st.Tasks,
		NoTimeTasks:    noTimeNames(st),
		Totals:         st.ComputeTotals(),
		CleanupOpen:    st.CleanupOpen(),
		PendingCleanup: st.PendingCleanup(),
	})
}

// SyncRequest replaces the whole schedule document. This is the legacy
// client path; the arrays are sanitized and normalized before they are
// accepted.
type SyncRequest struct {
	Slots       []model.Slot `json:"slots"`
	Tasks       []model.Task `json:"tasks"`
	NoTimeTasks []string     `json:"noTimeTasks"`
}

// POST /api/sync
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req SyncRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Slots == nil || req.Tasks == nil {
		writeErr(w, http.StatusBadRequest, "invalid payload")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	st := &State{Slots: req.Slots, Tasks: req.Tasks}
	st.sanitize()
	h.engine.MigrateLegacyNoTime(st, req.NoTimeTasks)
	Normalize(st)
	if err := h.store.Save(st); err != nil {
		h.logger.Printf("[schedule] persist failed: %v", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// CommandRequest is the request body for POST /api/schedule/cmd.
type CommandRequest struct {
	Cmd  string         `json:"cmd"`
	Args map[string]any `json:"args"`
}

// CommandResponse is its response. A rejected operation comes back with
// OK=false and the reason; the state is unchanged in that case.
type CommandResponse struct {
	OK    bool   `json:"ok"`
	Patch any    `json:"patch,omitempty"`
	Error string `json:"error,omitempty"`
}

// POST /api/schedule/cmd
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req CommandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	st, _, err := h.store.Load()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	patch, err := h.executeCommand(st, req.Cmd, req.Args)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, CommandResponse{OK: false, Error: err.Error()})
		return
	}

	Normalize(st)
	if err := h.store.Save(st); err != nil {
		// In-memory state stays authoritative; a failed write is a warning,
		// not a rollback.
		h.logger.Printf("[schedule] persist failed: %v", err)
	}
	writeJSON(w, http.StatusOK, CommandResponse{OK: true, Patch: patch})
}

// Bootstrap runs the load-time pass: legacy no-time migration,
// normalization, and one expiry sweep.
func (h *Handler) Bootstrap(now time.Time) (SweepReport, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	st, legacy, err := h.store.Load()
	if err != nil {
		return SweepReport{}, err
	}
	migrated := h.engine.MigrateLegacyNoTime(st, legacy)
	Normalize(st)
	report := h.engine.Sweep(st, now)
	if err := h.store.Save(st); err != nil {
		h.logger.Printf("[schedule] persist failed: %v", err)
	}
	if migrated > 0 {
		h.logger.Printf("[schedule] migrated %d legacy no-time tasks", migrated)
	}
	return report, nil
}

// RunSweep executes one expiry sweep against the stored state. Called by
// the periodic ticker and by the sweep.run command.
func (h *Handler) RunSweep(now time.Time) (SweepReport, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sweepLocked(now)
}

func (h *Handler) sweepLocked(now time.Time) (SweepReport, error) {
	st, _, err := h.store.Load()
	if err != nil {
		return SweepReport{}, err
	}
	report := h.engine.Sweep(st, now)
	if !report.Changed() {
		return report, nil
	}
	Normalize(st)
	if err := h.store.Save(st); err != nil {
		h.logger.Printf("[schedule] persist failed: %v", err)
	}
	h.logger.Printf("[schedule] sweep reclaimed %d slots, staged %d tasks",
		len(report.RemovedSlotIDs), len(report.StagedTaskIDs))
	return report, nil
}

func (h *Handler) executeCommand(st *State, cmd string, args map[string]any) (any, error) {
	switch cmd {
	case "slot.create":
		return h.cmdSlotCreate(st, args)
	case "slot.update":
		return h.cmdSlotUpdate(st, args)
	case "slot.duplicate":
		return h.cmdSlotDuplicate(st, args)
	case "slot.bulk_duplicate":
		return h.cmdSlotBulkDuplicate(st, args)
	case "slot.delete":
		return h.cmdSlotDelete(st, args)
	case "task.add":
		return h.cmdTaskAdd(st, args)
	case "task.add_no_time":
		return h.cmdTaskAddNoTime(st, args)
	case "task.edit":
		return h.cmdTaskEdit(st, args)
	case "task.delete":
		return h.cmdTaskDelete(st, args)
	case "task.assign":
		return h.cmdTaskAssign(st, args)
	case "task.unassign":
		return h.cmdTaskUnassign(st, args)
	case "task.merge":
		return h.cmdTaskMerge(st, args)
	case "task.toggle_postpone":
		return h.cmdTaskTogglePostpone(st, args)
	case "task.duplicate":
		return h.cmdTaskDuplicate(st, args)
	case "cleanup.keep":
		return h.cmdCleanupKeep(st, args)
	case "cleanup.discard":
		return h.cmdCleanupDiscard(st, args)
	case "cleanup.keep_all":
		return h.cmdCleanupKeepAll(st)
	case "cleanup.discard_all":
		return h.cmdCleanupDiscardAll(st)
	case "schedule.reset":
		return h.cmdScheduleReset(st)
	case "schedule.empty_slots":
		return h.cmdScheduleEmptySlots(st)
	case "schedule.apply_slot_list":
		return h.cmdScheduleApplySlotList(st, args)
	case "sweep.run":
		return h.cmdSweepRun(st)
	default:
		return nil, fmt.Errorf("unknown command: %s", cmd)
	}
}
