package http

import (
	"context"
	"net/http"
	"time"

	applog "saldo/internal/log"
)

// handleExport pushes one month's transactions to the configured sheet.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if s.exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "export is not configured")
		return
	}

	monthKey, ok := parseMonthKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	txs, err := s.ledger.ListTransactionsForMonth(r.Context(), monthKey)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Export month listing error", "error", err, "month", monthKey)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	// The sheets API can be slow; keep a bound on the round trip.
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	ref, err := s.exporter.ExportMonth(ctx, monthKey, txs)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Statement export error", "error", err, "month", monthKey)
		writeError(w, http.StatusBadGateway, "export failed")
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Statement exported", "month", monthKey, "transactions", len(txs), "ref", ref)
	writeJSON(w, http.StatusOK, map[string]any{
		"month":        monthKey,
		"transactions": len(txs),
		"ref":          ref,
	})
}
