package budget

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mohamedeng1505/scheduler/internal/model"
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

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// /api/budget
func (h *Handler) BudgetRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	writeJSON(w, 200, h.store.Get())
}

// /api/budget/{collection}
func (h *Handler) BudgetSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.TrimPrefix(r.URL.Path, "/api/budget/")
	tail = strings.Trim(tail, "/")

	switch tail {
	case "accounts":
		h.putAccounts(w, r)
	case "categories":
		h.putCategories(w, r)
	case "transactions":
		h.putTransactions(w, r)
	default:
		writeErr(w, 404, "not found")
	}
}

func (h *Handler) putAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeErr(w, 405, "method not allowed")
		return
	}
	var in struct {
		Accounts []model.Account `json:"accounts"`
	}
	if err := decodeJSON(r, &in); err != nil || in.Accounts == nil {
		writeErr(w, 400, "invalid payload")
		return
	}
	accounts, err := h.store.SetAccounts(in.Accounts)
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, map[string]any{"accounts": accounts})
}

func (h *Handler) putCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeErr(w, 405, "method not allowed")
		return
	}
	var in CategoryUpdate
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, 400, "invalid payload")
		return
	}
	if in.ExpenseCategories == nil || in.ExpenseSubcategories == nil ||
		in.IncomeCategories == nil || in.IncomeSubcategories == nil {
		writeErr(w, 400, "invalid payload")
		return
	}
	out, err := h.store.SetCategories(in)
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, out)
}

func (h *Handler) putTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeErr(w, 405, "method not allowed")
		return
	}
	var in TransactionUpdate
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, 400, "invalid payload")
		return
	}
	if in.ExpenseTransactions == nil || in.IncomeTransactions == nil || in.TransferTransactions == nil {
		writeErr(w, 400, "invalid payload")
		return
	}
	out, err := h.store.SetTransactions(in)
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, out)
}
