package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	cartdomain "github.com/dwikikusuma/foodstore/internal/cart/domain"
	catalog "github.com/dwikikusuma/foodstore/internal/catalog/domain"
)

const saveTimeout = 5 * time.Second

// Store owns the single in-memory cart state. Transitions are applied
// synchronously and are immediately visible; after every mutation the
// resulting snapshot is handed to a background writer that persists it.
// Persistence failures are logged and never roll back in-memory state.
//
// The writer coalesces: if transitions outpace the disk, intermediate
// snapshots are skipped and the latest one wins, which preserves the
// write-through contract since every save is a full snapshot.
type Store struct {
	mu    sync.Mutex
	state cartdomain.State

	persist Persistence
	log     *slog.Logger

	pendingMu  sync.Mutex
	pending    []cartdomain.Line
	hasPending bool

	signal chan struct{}
	stop   chan struct{}
	done   chan struct{}
}

func NewStore(persist Persistence, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		persist: persist,
		log:     log,
		signal:  make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.writer()
	return s
}

// Hydrate replaces the cart with whatever persistence holds. It is the
// setCart path: it does not trigger a write-through, so startup never
// rewrites what it just read.
func (s *Store) Hydrate(ctx context.Context) {
	lines, err := s.persist.Load(ctx)
	if err != nil {
		// Load contracts say this should not happen, but an empty cart
		// is always the safe recovery.
		s.log.Error("cart hydrate failed, starting empty", slog.Any("err", err))
		lines = nil
	}

	s.mu.Lock()
	s.state = cartdomain.State{Lines: lines}
	s.mu.Unlock()
}

// Lines returns a snapshot of the current cart.
func (s *Store) Lines() []cartdomain.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]cartdomain.Line(nil), s.state.Lines...)
}

func (s *Store) Totals() cartdomain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Totals()
}

func (s *Store) HasValidPrices() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.HasValidPrices()
}

func (s *Store) Add(item catalog.Item) {
	s.apply(func(st cartdomain.State) cartdomain.State { return st.Add(item) })
}

func (s *Store) Remove(id string) {
	s.apply(func(st cartdomain.State) cartdomain.State { return st.Remove(id) })
}

func (s *Store) IncreaseQuantity(id string) {
	s.apply(func(st cartdomain.State) cartdomain.State { return st.IncreaseQuantity(id) })
}

func (s *Store) DecreaseQuantity(id string) {
	s.apply(func(st cartdomain.State) cartdomain.State { return st.DecreaseQuantity(id) })
}

func (s *Store) Clear() {
	s.apply(func(st cartdomain.State) cartdomain.State { return st.Clear() })
}

// Close stops the writer after flushing any pending snapshot.
func (s *Store) Close() {
	close(s.stop)
	<-s.done
}

// apply runs one transition to completion and schedules the
// write-through. The caller returns as soon as the in-memory state has
// changed; the save happens on the writer goroutine.
func (s *Store) apply(transition func(cartdomain.State) cartdomain.State) {
	s.mu.Lock()
	s.state = transition(s.state)
	snapshot := append([]cartdomain.Line(nil), s.state.Lines...)
	s.mu.Unlock()

	s.pendingMu.Lock()
	s.pending = snapshot
	s.hasPending = true
	s.pendingMu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *Store) writer() {
	defer close(s.done)
	for {
		select {
		case <-s.signal:
			s.flush()
		case <-s.stop:
			s.flush()
			return
		}
	}
}

func (s *Store) flush() {
	s.pendingMu.Lock()
	lines := s.pending
	has := s.hasPending
	s.pending = nil
	s.hasPending = false
	s.pendingMu.Unlock()

	if !has {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.persist.Save(ctx, lines); err != nil {
		s.log.Error("cart write-through failed", slog.Any("err", err), slog.Int("lines", len(lines)))
	}
}
