package client

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Fixed operation-specific messages surfaced through Err when local
// persistence fails. Remote failures never reach Err.
const (
	msgLoadFailed   = "failed to load wishlist from storage"
	msgAddFailed    = "failed to add item to wishlist"
	msgRemoveFailed = "failed to remove item from wishlist"
	msgClearFailed  = "failed to clear wishlist"
)

// notifyTimeout bounds each fire-and-forget notification.
const notifyTimeout = 10 * time.Second

// Store is the single source of truth for which products the current session
// has favorited. All mutations are synchronous under one lock: state is
// updated and persisted before the method returns, then the remote service
// is informed from a detached goroutine whose failure only gets logged.
//
// Construct one Store per browsing session and share it by reference.
type Store struct {
	mu      sync.Mutex
	items   []Item
	loading bool
	errMsg  string

	persist Adapter
	remote  Syncer
	logger  *slog.Logger

	notifyWG sync.WaitGroup
	now      func() time.Time
}

// NewStore creates a store and loads the persisted wishlist. A corrupt
// stored value leaves the store empty with Err set; the stored value itself
// is not touched. remote may be nil to run fully offline.
func NewStore(persist Adapter, remote Syncer, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		persist: persist,
		remote:  remote,
		logger:  logger,
		now:     time.Now,
	}

	items, err := persist.Load()
	if err != nil {
		logger.Warn("wishlist storage unreadable, starting empty",
			slog.String("error", err.Error()),
		)
		s.errMsg = msgLoadFailed
		items = []Item{}
	}
	s.items = items

	return s
}

// Add appends the item unless one with the same product ID already exists;
// a duplicate add is a no-op that preserves the original entry and its
// AddedAt. The remote service is notified best-effort.
func (s *Store) Add(input ItemInput) {
	s.mu.Lock()
	s.errMsg = ""

	if s.indexOf(input.ProductID) >= 0 {
		s.mu.Unlock()
		return
	}

	s.items = append(s.items, input.item(s.now().UTC()))
	s.saveLocked(msgAddFailed)
	s.mu.Unlock()

	s.notify(input.ProductID, "add")
}

// Remove deletes the item with the given product ID. Removing an absent
// item is a no-op without error.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	s.errMsg = ""

	i := s.indexOf(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	s.saveLocked(msgRemoveFailed)
	s.mu.Unlock()

	s.notify(productID, "remove")
}

// Toggle removes the item if present, adds it otherwise. Presence is decided
// and the mutation applied under one lock acquisition, so re-entrant calls
// cannot observe a half-applied toggle.
func (s *Store) Toggle(input ItemInput) {
	s.mu.Lock()
	s.errMsg = ""

	action := "add"
	if i := s.indexOf(input.ProductID); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.saveLocked(msgRemoveFailed)
		action = "remove"
	} else {
		s.items = append(s.items, input.item(s.now().UTC()))
		s.saveLocked(msgAddFailed)
	}
	s.mu.Unlock()

	s.notify(input.ProductID, action)
}

// Clear empties the wishlist unconditionally and persists the empty
// sequence.
func (s *Store) Clear() {
	s.mu.Lock()
	s.errMsg = ""
	s.items = []Item{}
	s.saveLocked(msgClearFailed)
	s.mu.Unlock()

	if s.remote == nil {
		return
	}
	s.notifyWG.Add(1)
	go func() {
		defer s.notifyWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.remote.NotifyClear(ctx); err != nil {
			s.logger.Warn("wishlist clear notification failed",
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Contains reports whether the product is currently favorited.
func (s *Store) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(productID) >= 0
}

// Count returns the number of favorited items.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns a copy of the wishlist in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Err returns the message of the most recent failed local operation, or ""
// when the last local operation succeeded.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Loading reports whether a SyncWithServer call is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SyncWithServer pulls the server's canonical wishlist and replaces local
// state with it wholesale. Any failure leaves local state untouched and is
// never surfaced through Err; Loading always returns to false. Concurrent
// calls race benignly: both run to completion and the later assignment wins.
func (s *Store) SyncWithServer(ctx context.Context) {
	if s.remote == nil {
		return
	}

	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	items, err := s.remote.FetchAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.logger.Warn("wishlist server sync failed",
			slog.String("error", err.Error()),
		)
		return
	}

	s.items = items
	if s.items == nil {
		s.items = []Item{}
	}
	if err := s.persist.Save(s.items); err != nil {
		// Server state is already live in memory; a failed write only
		// costs durability until the next successful save.
		s.logger.Warn("persist synced wishlist failed",
			slog.String("error", err.Error()),
		)
	}
}

// Flush blocks until all in-flight remote notifications have completed.
// Call before shutdown, and in tests that assert on notification traffic.
func (s *Store) Flush() {
	s.notifyWG.Wait()
}

// indexOf returns the position of the product in items, or -1. Callers hold mu.
func (s *Store) indexOf(productID string) int {
	for i, it := range s.items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// saveLocked persists the current items and records the operation's error
// message on failure. The in-memory mutation stands either way. Callers hold mu.
func (s *Store) saveLocked(failMsg string) {
	if err := s.persist.Save(s.items); err != nil {
		s.logger.Warn("wishlist persistence failed",
			slog.String("error", err.Error()),
		)
		s.errMsg = failMsg
	}
}

// notify informs the remote service of one mutation from a detached
// goroutine. Failures are logged and dropped: no retries, no queueing.
func (s *Store) notify(productID, action string) {
	if s.remote == nil {
		return
	}

	s.notifyWG.Add(1)
	go func() {
		defer s.notifyWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.remote.Notify(ctx, productID, action); err != nil {
			s.logger.Warn("wishlist sync notification failed",
				slog.String("product_id", productID),
				slog.String("action", action),
				slog.String("error", err.Error()),
			)
		}
	}()
}
