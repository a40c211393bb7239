package http

import (
	"encoding/json"
	"net/http"
	"time"

	"saldo/internal/core"
	applog "saldo/internal/log"
)

func (s *Server) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, toOverviewDTO(s.stats.View()))
}

func (s *Server) handleStatsBuckets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, toBucketsDTO(s.stats.View()))
}

// handleStatsGrouped serves the month-name regrouping, which only exists
// while a month selection is active.
func (s *Server) handleStatsGrouped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, toGroupedDTO(s.stats.View()))
}

func (s *Server) handleStatsCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, toCategoriesStatsDTO(s.stats.View()))
}

func (s *Server) handleStatsSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, toSeriesDTO(s.stats.View()))
}

type selectionRequest struct {
	// Month is 1-12; zero means no month selection.
	Month int `json:"month"`
	// Kind is "income" or "expense"; empty means no kind selection.
	Kind string `json:"kind"`
}

// handleStatsSelection sets (POST) or clears (DELETE) the month/kind
// selection that scopes every derived view.
func (s *Server) handleStatsSelection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req selectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "Parse selection body error", "error", err)
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Month < 0 || req.Month > 12 {
			writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
			return
		}
		if req.Kind != "" && !core.Kind(req.Kind).Valid() {
			writeError(w, http.StatusBadRequest, "kind must be income or expense")
			return
		}

		if req.Month > 0 {
			s.stats.SelectMonth(time.Month(req.Month))
		} else {
			s.stats.ClearMonth()
		}
		if req.Kind != "" {
			s.stats.SelectKind(core.Kind(req.Kind))
		} else {
			s.stats.ClearKind()
		}
		writeJSON(w, http.StatusOK, toOverviewDTO(s.stats.View()))

	case http.MethodDelete:
		s.stats.ClearMonth()
		s.stats.ClearKind()
		writeJSON(w, http.StatusOK, toOverviewDTO(s.stats.View()))

	default:
		methodNotAllowed(w, http.MethodPost, http.MethodDelete)
	}
}

// handleCategories serves the static category reference lists.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	switch r.URL.Query().Get("kind") {
	case "":
		writeJSON(w, http.StatusOK, map[string][]categoryDTO{
			"income":  toCategoryDTOs(core.IncomeCategories()),
			"expense": toCategoryDTOs(core.ExpenseCategories()),
		})
	case "income":
		writeJSON(w, http.StatusOK, toCategoryDTOs(core.IncomeCategories()))
	case "expense":
		writeJSON(w, http.StatusOK, toCategoryDTOs(core.ExpenseCategories()))
	default:
		writeError(w, http.StatusBadRequest, "kind must be income or expense")
	}
}
