package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"saldo/internal/cache"
	"saldo/internal/core"
	applog "saldo/internal/log"
	"saldo/internal/middleware/ratelimit"
	"saldo/internal/middleware/security"
	"saldo/internal/middleware/trace"
	"saldo/internal/services"
)

// StatementExporter pushes a month's transactions to an external sheet. May
// be nil when the export integration is not configured.
type StatementExporter interface {
	ExportMonth(ctx context.Context, monthKey string, txs []core.Transaction) (string, error)
}

type Server struct {
	http.Server

	ledger  *services.LedgerService
	budgets *services.BudgetService
	stats   *services.StatsService

	exporter StatementExporter

	logger   *applog.Logger
	limiter  *ratelimit.Limiter
	detector *security.Detector
	headers  *security.HeadersMiddleware
	tracer   *trace.Middleware

	// Derived reads dominate this API, so month-keyed results are cached
	// and purged wholesale on any mutation.
	budgetsCache *cache.LRUCache[[]core.BudgetWithSpent]
	monthTxCache *cache.LRUCache[[]core.Transaction]
	cacheManager *cache.Manager

	started      time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, ledger *services.LedgerService, budgets *services.BudgetService, stats *services.StatsService, exporter StatementExporter) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:   ledger,
		budgets:  budgets,
		stats:    stats,
		exporter: exporter,

		logger:   applog.New(applog.Config{Component: applog.ComponentHTTP}),
		limiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector: security.NewDetector(),
		headers:  security.NewHeadersMiddleware(security.DefaultHeadersConfig()),

		budgetsCache: cache.NewLRUCache[[]core.BudgetWithSpent](100, 5*time.Minute),
		monthTxCache: cache.NewLRUCache[[]core.Transaction](200, 5*time.Minute),
		cacheManager: cache.NewManager(),

		started: time.Now(),
	}
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP, applog.NewHTTPLogger(s.logger))

	s.cacheManager.Register(s.budgetsCache)
	s.cacheManager.Register(s.monthTxCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.Handle("/api/transactions", s.wrap(s.handleTransactions))
	mux.Handle("/api/transactions/{id}", s.wrap(s.handleTransactionByID))
	mux.Handle("/api/budgets", s.wrap(s.handleBudgets))
	mux.Handle("/api/budgets/{id}", s.wrap(s.handleBudgetByID))
	mux.Handle("/api/stats/overview", s.wrap(s.handleStatsOverview))
	mux.Handle("/api/stats/buckets", s.wrap(s.handleStatsBuckets))
	mux.Handle("/api/stats/grouped", s.wrap(s.handleStatsGrouped))
	mux.Handle("/api/stats/categories", s.wrap(s.handleStatsCategories))
	mux.Handle("/api/stats/series", s.wrap(s.handleStatsSeries))
	mux.Handle("/api/stats/selection", s.wrap(s.handleStatsSelection))
	mux.Handle("/api/categories", s.wrap(s.handleCategories))
	mux.Handle("/api/export", s.wrap(s.handleExport))

	return s
}

// wrap applies the shared middleware chain: tracing, context logger,
// security headers and mutation rate limiting.
func (s *Server) wrap(h http.HandlerFunc) http.Handler {
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && !s.limiter.Allow(s.detector.ExtractClientIP(r)) {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", s.detector.ExtractClientIP(r), "method", r.Method, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		h(w, r)
	})

	chain := s.headers.Middleware(limited)
	chain = applog.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	})(chain)
	chain = applog.Middleware(s.logger)(chain)
	return s.tracer.Middleware(chain)
}

// invalidateDerived drops every cached month result. Mutations are rare next
// to reads, so wholesale purge beats tracking which months changed.
func (s *Server) invalidateDerived() {
	s.budgetsCache.Purge()
	s.monthTxCache.Purge()
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.started).String(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{}
	status := "ready"
	httpStatus := http.StatusOK

	if _, err := s.ledger.ListTransactions(ctx); err != nil {
		checks["store"] = "failed: " + err.Error()
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}

	if s.exporter != nil {
		checks["export"] = "configured"
	} else {
		checks["export"] = "not_configured"
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": status,
		"checks": checks,
	})
}
