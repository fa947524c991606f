package challenge

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	store *FileStore
}

func NewHandler(store *FileStore) *Handler {
	return &Handler{store: store}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// /api/money-challenge
func (h *Handler) Challenge(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, 200, map[string]any{"selected": h.store.Selected()})
		return

	case http.MethodPost:
		var in struct {
			Selected []int `json:"selected"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Selected == nil {
			writeErr(w, 400, "invalid payload")
			return
		}
		selected, err := h.store.SetSelected(in.Selected)
		if err != nil {
			writeErr(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, map[string]any{"selected": selected})
		return

	default:
		writeErr(w, 405, "method not allowed")
		return
	}
}
