package http

import (
	"encoding/json"
	"net/http"

	"saldo/internal/core"
	applog "saldo/internal/log"
)

type budgetRequest struct {
	Category       string `json:"category"`
	Amount         string `json:"amount"`
	Month          string `json:"month"`
	AlertEnabled   bool   `json:"alert_enabled"`
	AlertThreshold int64  `json:"alert_threshold"`
}

func (br budgetRequest) toBudget(id int64) (core.Budget, error) {
	cents, err := core.ParseDecimalToCents(br.Amount)
	if err != nil {
		return core.Budget{}, core.ErrInvalidAmount
	}
	return core.Budget{
		ID:             id,
		Category:       br.Category,
		Amount:         core.Money{Cents: cents},
		Month:          br.Month,
		AlertEnabled:   br.AlertEnabled,
		AlertThreshold: br.AlertThreshold,
	}, nil
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listBudgets(w, r)
	case http.MethodPost:
		s.createBudget(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// listBudgets returns the month's budgets with spend, remaining and alert
// state. Each computed list is cached until the next mutation.
func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request) {
	monthKey, ok := parseMonthKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	views, found := s.budgetsCache.Get(monthKey)
	if !found {
		var err error
		views, err = s.budgets.ComputeBudgetsForMonth(r.Context(), monthKey)
		if err != nil {
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "Compute budgets error", "error", err, "month", monthKey)
			writeError(w, http.StatusInternalServerError, "failed to compute budgets")
			return
		}
		s.budgetsCache.Set(monthKey, views)
	}

	out := make([]budgetWithSpentDTO, 0, len(views))
	for _, v := range views {
		out = append(out, toBudgetWithSpentDTO(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Parse budget body error", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := req.toBudget(0)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	id, err := s.budgets.SaveBudget(r.Context(), b)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	b.ID = id

	s.invalidateDerived()
	writeJSON(w, http.StatusCreated, toBudgetDTO(b))
}

func (s *Server) handleBudgetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid budget id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		b, err := s.budgets.GetBudgetByID(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBudgetDTO(b))

	case http.MethodPut:
		var req budgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "Parse budget body error", "error", err, "id", id)
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		b, err := req.toBudget(id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := s.budgets.UpdateBudget(r.Context(), b); err != nil {
			writeDomainError(w, err)
			return
		}
		s.invalidateDerived()
		writeJSON(w, http.StatusOK, toBudgetDTO(b))

	case http.MethodDelete:
		if err := s.budgets.DeleteBudget(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		s.invalidateDerived()
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
