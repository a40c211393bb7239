package ledger

import (
	"context"
	"sync"
	"sync/atomic"

	"saldo/internal/core"
)

// Notifier fans full-list snapshots out to subscribers with latest-value
// semantics: each subscriber channel holds at most one pending snapshot, and
// a newer emission replaces an undelivered older one. Store implementations
// embed it to satisfy TransactionWatcher.
type Notifier struct {
	mu   sync.Mutex
	seq  atomic.Uint64
	subs map[chan Snapshot]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[chan Snapshot]struct{})}
}

// WatchTransactions registers a subscriber. The subscription ends when ctx is
// done; the returned channel is closed afterwards.
func (n *Notifier) WatchTransactions(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, 1)

	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		delete(n.subs, ch)
		n.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Publish pushes a new full snapshot to every subscriber. Undelivered older
// snapshots are dropped first so receivers always observe the newest state.
func (n *Notifier) Publish(txs []core.Transaction) {
	snap := Snapshot{Seq: n.seq.Add(1), Transactions: txs}

	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
