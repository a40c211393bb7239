package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"saldo/internal/core"
	applog "saldo/internal/log"
)

type createTransactionRequest struct {
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	TimeOfDay   string `json:"time_of_day"`
	Kind        string `json:"kind"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// listTransactions returns the full ledger, or one month when ?month=YYYY-MM
// is given. Month results are cached.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSpace(r.URL.Query().Get("month")) == "" {
		txs, err := s.ledger.ListTransactions(r.Context())
		if err != nil {
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "List transactions error", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list transactions")
			return
		}
		writeJSON(w, http.StatusOK, toTransactionDTOs(txs))
		return
	}

	monthKey, ok := parseMonthKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	if txs, found := s.monthTxCache.Get(monthKey); found {
		applog.FromContext(r.Context()).DebugContext(r.Context(), "Month transactions cache hit", "month", monthKey, "count", len(txs))
		writeJSON(w, http.StatusOK, toTransactionDTOs(txs))
		return
	}

	txs, err := s.ledger.ListTransactionsForMonth(r.Context(), monthKey)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "List month transactions error", "error", err, "month", monthKey)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	s.monthTxCache.Set(monthKey, txs)
	writeJSON(w, http.StatusOK, toTransactionDTOs(txs))
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Parse transaction body error", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := s.ledger.AddTransaction(r.Context(), core.TransactionInput{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
		TimeOfDay:   req.TimeOfDay,
		Kind:        core.Kind(req.Kind),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateDerived()
	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, http.MethodDelete)
		return
	}

	id, ok := parsePathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), core.Transaction{ID: id}); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Delete transaction error", "error", err, "id", id)
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}
