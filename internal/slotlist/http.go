package slotlist

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mohamedeng1505/scheduler/internal/model"
)

type Handler struct {
	repo Repo

	// snapshotSlots returns the live slot collection to capture when a new
	// list is saved.
	snapshotSlots func() []model.Slot
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) SetSlotSnapshot(fn func() []model.Slot) {
	h.snapshotSlots = fn
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

// /api/slot-lists  (collection)
func (h *Handler) ListsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		lists, err := h.repo.List()
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, map[string]any{"savedSlotLists": lists})
		return

	case http.MethodPost:
		var in struct {
			Name  string       `json:"name"`
			Slots []model.Slot `json:"slots"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		if strings.TrimSpace(in.Name) == "" {
			writeErr(w, 400, "name is required")
			return
		}

		slots := in.Slots
		if slots == nil && h.snapshotSlots != nil {
			slots = h.snapshotSlots()
		}

		l, err := h.repo.Create(in.Name, slots)
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 201, l)
		return

	default:
		writeErr(w, 405, "method not allowed")
		return
	}
}

// /api/slot-lists/{id}
func (h *Handler) ListsSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.TrimPrefix(r.URL.Path, "/api/slot-lists/")
	tail = strings.Trim(tail, "/")
	if tail == "" || strings.Contains(tail, "/") {
		writeErr(w, 404, "not found")
		return
	}
	id := model.SlotListID(tail)

	switch r.Method {
	case http.MethodGet:
		l, err := h.repo.Get(id)
		if err == ErrNotFound {
			writeErr(w, 404, "not found")
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, l)
		return

	case http.MethodPatch:
		var in struct {
			Name *string `json:"name"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
			writeErr(w, 400, `missing field "name"`)
			return
		}

		l, err := h.repo.Rename(id, *in.Name)
		if err == ErrNotFound {
			writeErr(w, 404, "not found")
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, l)
		return

	case http.MethodDelete:
		err := h.repo.Delete(id)
		if err == ErrNotFound {
			writeErr(w, 404, "not found")
			return
		}
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, map[string]any{"ok": true})
		return

	default:
		writeErr(w, 405, "method not allowed")
		return
	}
}
