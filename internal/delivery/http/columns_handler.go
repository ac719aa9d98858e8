package http

import (
	"net/http"
	"strings"

	"botadmin-backend/internal/usecase/prefs"
)

// ColumnsHandler serves GET /api/columns/{table}: a table's storage key,
// column order and default visibility. The dashboard seeds its column
// toggles from this so the page and the preference model cannot drift.
type ColumnsHandler struct {
	sets map[string]prefs.ColumnSet
}

func NewColumnsHandler() *ColumnsHandler {
	return &ColumnsHandler{sets: prefs.Sets()}
}

type columnsResponse struct {
	Table       string          `json:"table"`
	StorageKey  string          `json:"storageKey"`
	Order       []string        `json:"order"`
	Defaults    map[string]bool `json:"defaults"`
	ArrayFormat bool            `json:"arrayFormat"`
}

func (h *ColumnsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	table := strings.TrimPrefix(r.URL.Path, "/api/columns/")
	set, ok := h.sets[table]
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown table")
		return
	}

	writeJSON(w, http.StatusOK, columnsResponse{
		Table:       set.Table,
		StorageKey:  set.StorageKey,
		Order:       set.Order,
		Defaults:    set.DefaultVisible(),
		ArrayFormat: set.ArrayFormat,
	})
}
