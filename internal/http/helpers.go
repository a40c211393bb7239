package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"saldo/internal/core"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError emits a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps core sentinel errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrBudgetNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrEmptyAmount),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrNoCategorySelected),
		errors.Is(err, core.ErrEmptyDate),
		errors.Is(err, core.ErrInvalidCategory):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseMonthKey reads the "month" query parameter as YYYY-MM, defaulting to
// the current month when absent. A malformed value reports ok=false.
func parseMonthKey(r *http.Request) (string, bool) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		return time.Now().Format(core.MonthKeyLayout), true
	}
	if _, err := time.Parse(core.MonthKeyLayout, v); err != nil {
		return "", false
	}
	return v, true
}

// parsePathID reads the {id} path segment as a positive integer.
func parsePathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// methodNotAllowed writes the Allow header and a 405 body.
func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
