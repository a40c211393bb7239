package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"saldo/internal/core"
	"saldo/internal/ledger"
)

// StatsView is the complete derived state exposed to the presentation layer,
// recomputed whole on every ledger emission or selection change.
type StatsView struct {
	Seq          uint64
	Balance      core.Money
	TotalIncome  core.Money
	TotalExpense core.Money
	Buckets      map[core.Bucket][]core.Transaction
	Grouped      map[string][]core.Transaction
	Shares       map[string]core.Money
	Colors       map[string]string
	Series       []core.SeriesPoint
	Progress     []core.CategoryTotal
	GrandTotal   core.Money
}

// StatsService is the single writer of derived statistics state. It caches
// the latest full transaction snapshot, applies the active month/kind
// selection, and recomputes every derived view synchronously. Emissions are
// ordered by sequence; a stale snapshot never overwrites a fresher one.
type StatsService struct {
	store ledger.Store
	today func() core.Date

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	lastSeq  uint64
	cached   []core.Transaction
	month    *time.Month
	kind     *core.Kind
	view     StatsView
}

// NewStatsService creates the orchestrator. today is injectable for tests;
// pass nil for the system clock.
func NewStatsService(store ledger.Store, today func() core.Date) *StatsService {
	if today == nil {
		today = func() core.Date {
			now := time.Now()
			return core.NewDate(now.Year(), int(now.Month()), now.Day())
		}
	}
	return &StatsService{store: store, today: today}
}

// Start loads the current ledger and begins consuming live snapshots until
// ctx is cancelled or Stop is called. Returns an error if already running.
func (s *StatsService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("stats service is already running")
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	// Initial load. On failure the previous (empty) view stands untouched.
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Initial ledger load failed, starting with empty view", "error", err)
	} else {
		s.mu.Lock()
		s.cached = txs
		s.recomputeLocked()
		s.mu.Unlock()
	}

	snapshots := s.store.WatchTransactions(ctx)
	go s.runLoop(ctx, snapshots)

	slog.InfoContext(ctx, "Stats service started", "transactions", len(txs))
	return nil
}

// Stop halts the snapshot loop and waits for it to finish.
func (s *StatsService) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	close(s.stopCh)

	select {
	case <-s.doneCh:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	return nil
}

func (s *StatsService) runLoop(ctx context.Context, snapshots <-chan ledger.Snapshot) {
	defer close(s.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			s.Apply(snap)
		}
	}
}

// Apply replaces the cached ledger with a snapshot and recomputes, unless a
// fresher emission has already been applied (last-emission-wins by sequence,
// not by arrival order).
func (s *StatsService) Apply(snap ledger.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Seq <= s.lastSeq {
		return
	}
	s.lastSeq = snap.Seq
	s.cached = snap.Transactions
	s.recomputeLocked()
}

// SelectMonth narrows derived views to one calendar month; ClearMonth undoes.
func (s *StatsService) SelectMonth(m time.Month) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.month = &m
	s.recomputeLocked()
}

func (s *StatsService) ClearMonth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.month = nil
	s.recomputeLocked()
}

// SelectKind narrows derived views to income or expense; ClearKind undoes.
func (s *StatsService) SelectKind(k core.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = &k
	s.recomputeLocked()
}

func (s *StatsService) ClearKind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = nil
	s.recomputeLocked()
}

// View returns the current derived state.
func (s *StatsService) View() StatsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// recomputeLocked rebuilds every derived view from the cached snapshot.
// Pure in-memory work; it either completes fully or (being panic-free pure
// functions) leaves nothing half-written. Caller holds s.mu.
func (s *StatsService) recomputeLocked() {
	filtered := s.cached
	if s.kind != nil {
		filtered = core.FilterByKind(filtered, *s.kind)
	}
	if s.month != nil {
		filtered = core.FilterByMonth(filtered, *s.month)
	}

	shareKind := core.Expense
	if s.kind != nil {
		shareKind = *s.kind
	}
	colors := core.ColorMap(shareKind)

	buckets := core.BucketByRecency(s.today(), filtered)
	grouped := map[string][]core.Transaction{}
	if s.month != nil {
		grouped = core.GroupBucketsByMonthName(buckets, *s.month)
	}

	progress, grand := core.CategoryProgress(filtered, shareKind)

	s.view = StatsView{
		Seq:          s.lastSeq,
		Balance:      core.Balance(filtered),
		TotalIncome:  core.TotalIncome(filtered),
		TotalExpense: core.TotalExpense(filtered),
		Buckets:      buckets,
		Grouped:      grouped,
		Shares:       core.CategoryShares(core.FilterByKind(filtered, shareKind), colors),
		Colors:       colors,
		Series:       core.Series(filtered),
		Progress:     progress,
		GrandTotal:   grand,
	}
}
