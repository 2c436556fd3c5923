package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// recordingSyncer captures notification traffic and serves a canned FetchAll.
type recordingSyncer struct {
	mu       sync.Mutex
	notifies []string
	clears   int
	fetches  int
	items    []Item
	fail     bool

	// onFetch runs inside FetchAll, before the result is returned.
	onFetch func()
}

func (r *recordingSyncer) Notify(_ context.Context, productID, action string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("remote unreachable")
	}
	r.notifies = append(r.notifies, productID+":"+action)
	return nil
}

func (r *recordingSyncer) NotifyClear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("remote unreachable")
	}
	r.clears++
	return nil
}

func (r *recordingSyncer) FetchAll(context.Context) ([]Item, error) {
	if r.onFetch != nil {
		r.onFetch()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches++
	if r.fail {
		return nil, errors.New("remote unreachable")
	}
	return r.items, nil
}

func (r *recordingSyncer) sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.notifies))
	copy(out, r.notifies)
	return out
}

// failingSaveAdapter wraps a MemoryAdapter and fails every Save.
type failingSaveAdapter struct {
	*MemoryAdapter
}

func (a *failingSaveAdapter) Save([]Item) error {
	return &WriteError{Err: errors.New("storage full")}
}

func silkDress() ItemInput {
	return ItemInput{ProductID: "p1", Name: "Silk Dress", Slug: "silk-dress", Price: 3450, Category: "Dresses"}
}

// ----------------------------------------------------------------------------
// Dedup
// ----------------------------------------------------------------------------

func TestAdd_DuplicateKeepsFirstEntry(t *testing.T) {
	s := NewStore(NewMemoryAdapter(), nil, testLogger())

	t0 := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return t0 }
	s.Add(silkDress())

	// Second add carries different payload fields and a later clock; the
	// original entry must be preserved untouched.
	s.now = func() time.Time { return t0.Add(time.Hour) }
	s.Add(ItemInput{ProductID: "p1", Name: "Renamed Dress", Price: 9999})

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Silk Dress", items[0].Name)
	assert.Equal(t, 3450.0, items[0].Price)
	assert.Equal(t, t0, items[0].AddedAt)
}

func TestAdd_InsertionOrderPreserved(t *testing.T) {
	s := NewStore(NewMemoryAdapter(), nil, testLogger())

	for i := 0; i < 5; i++ {
		s.Add(ItemInput{ProductID: fmt.Sprintf("p%d", i)})
	}
	s.Add(ItemInput{ProductID: "p2"}) // duplicate, must not move

	items := s.Items()
	require.Len(t, items, 5)
	for i, it := range items {
		assert.Equal(t, fmt.Sprintf("p%d", i), it.ProductID)
	}
}

// ----------------------------------------------------------------------------
// Toggle
// ----------------------------------------------------------------------------

func TestToggle_Symmetry(t *testing.T) {
	s := NewStore(NewMemoryAdapter(), nil, testLogger())
	s.Add(ItemInput{ProductID: "p1"})
	s.Add(ItemInput{ProductID: "p2"})
	before := s.Items()

	s.Toggle(ItemInput{ProductID: "p3"})
	assert.True(t, s.Contains("p3"))
	s.Toggle(ItemInput{ProductID: "p3"})

	assert.Equal(t, before, s.Items())
}

func TestToggle_ReAddGetsFreshTimestamp(t *testing.T) {
	s := NewStore(NewMemoryAdapter(), nil, testLogger())

	t0 := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return t0 }
	s.Toggle(silkDress())
	s.Toggle(silkDress()) // removed

	s.now = func() time.Time { return t0.Add(time.Hour) }
	s.Toggle(silkDress()) // re-added

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, t0.Add(time.Hour), items[0].AddedAt)
}

// ----------------------------------------------------------------------------
// Persistence
// ----------------------------------------------------------------------------

func TestPersistence_RoundTripAcrossStores(t *testing.T) {
	adapter := NewMemoryAdapter()

	s := NewStore(adapter, nil, testLogger())
	s.Add(silkDress())
	s.Add(ItemInput{ProductID: "p2", Name: "Cashmere Coat", Price: 12900})

	// A new store over the same adapter simulates a restart.
	restarted := NewStore(adapter, nil, testLogger())
	items := restarted.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, "p2", items[1].ProductID)
	assert.Empty(t, restarted.Err())
}

func TestPersistence_EmptySequenceRoundTrips(t *testing.T) {
	adapter := NewMemoryAdapter()
	s := NewStore(adapter, nil, testLogger())
	s.Add(silkDress())
	s.Clear()

	restarted := NewStore(adapter, nil, testLogger())
	assert.Zero(t, restarted.Count())
}

func TestFileAdapter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wishlist.json")
	adapter := NewFileAdapter(path)

	want := []Item{
		{ProductID: "p1", Name: "Silk Dress", Price: 3450, AddedAt: time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, adapter.Save(want))

	got, err := adapter.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileAdapter_MissingFileIsEmpty(t *testing.T) {
	adapter := NewFileAdapter(filepath.Join(t.TempDir(), "missing.json"))

	items, err := adapter.Load()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFileAdapter_CorruptFileIsReadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wishlist.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileAdapter(path).Load()
	var readErr *ReadError
	assert.True(t, errors.As(err, &readErr))
}

func TestNewStore_CorruptStorageStartsEmptyWithError(t *testing.T) {
	adapter := NewMemoryAdapter()
	adapter.Corrupt()

	s := NewStore(adapter, nil, testLogger())
	assert.Zero(t, s.Count())
	assert.Equal(t, msgLoadFailed, s.Err())

	// The corrupt stored value is ignored, not deleted.
	_, err := adapter.Load()
	assert.Error(t, err)

	// The next local mutation clears the error.
	s.Add(silkDress())
	assert.Empty(t, s.Err())
}

func TestSaveFailure_MutationStandsAndErrorIsSet(t *testing.T) {
	adapter := &failingSaveAdapter{MemoryAdapter: NewMemoryAdapter()}
	s := NewStore(adapter, nil, testLogger())

	s.Add(silkDress())
	assert.True(t, s.Contains("p1"))
	assert.Equal(t, msgAddFailed, s.Err())

	s.Remove("p1")
	assert.False(t, s.Contains("p1"))
	assert.Equal(t, msgRemoveFailed, s.Err())

	s.Clear()
	assert.Equal(t, msgClearFailed, s.Err())
}

// ----------------------------------------------------------------------------
// Remote-failure isolation
// ----------------------------------------------------------------------------

func TestRemoteFailures_NeverTouchLocalState(t *testing.T) {
	adapter := NewMemoryAdapter()
	remote := &recordingSyncer{fail: true}
	s := NewStore(adapter, remote, testLogger())

	s.Add(silkDress())
	s.Add(ItemInput{ProductID: "p2"})
	s.Toggle(ItemInput{ProductID: "p3"})
	s.Remove("p2")
	s.Flush()

	assert.Equal(t, 2, s.Count())
	assert.True(t, s.Contains("p1"))
	assert.True(t, s.Contains("p3"))
	assert.Empty(t, s.Err())

	// Persisted state matches in-memory state despite the dead remote.
	persisted, err := adapter.Load()
	require.NoError(t, err)
	assert.Len(t, persisted, 2)

	s.Clear()
	s.Flush()
	assert.Zero(t, s.Count())
	assert.Empty(t, s.Err())
}

func TestNotify_CarriesProductAndAction(t *testing.T) {
	remote := &recordingSyncer{}
	s := NewStore(NewMemoryAdapter(), remote, testLogger())

	s.Add(silkDress())
	s.Flush()
	s.Toggle(silkDress())
	s.Flush()
	s.Clear()
	s.Flush()

	assert.Equal(t, []string{"p1:add", "p1:remove"}, remote.sent())
	assert.Equal(t, 1, remote.clears)
}

func TestNotify_NoDuplicateTrafficForNoopMutations(t *testing.T) {
	remote := &recordingSyncer{}
	s := NewStore(NewMemoryAdapter(), remote, testLogger())

	s.Add(silkDress())
	s.Add(silkDress())   // duplicate
	s.Remove("p-absent") // no-op
	s.Flush()

	assert.Equal(t, []string{"p1:add"}, remote.sent())
}

// ----------------------------------------------------------------------------
// Server sync
// ----------------------------------------------------------------------------

func TestSyncWithServer_ServerWins(t *testing.T) {
	adapter := NewMemoryAdapter()
	server := []Item{
		{ProductID: "s1", Name: "Wool Blazer", AddedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	remote := &recordingSyncer{items: server}
	s := NewStore(adapter, remote, testLogger())

	s.Add(silkDress())
	s.Add(ItemInput{ProductID: "p2"})

	s.SyncWithServer(context.Background())

	assert.Equal(t, server, s.Items())
	assert.False(t, s.Loading())
	assert.Empty(t, s.Err())

	// The server's list is also what got persisted.
	persisted, err := adapter.Load()
	require.NoError(t, err)
	assert.Equal(t, server, persisted)
}

func TestSyncWithServer_LoadingTrueDuringCall(t *testing.T) {
	remote := &recordingSyncer{items: []Item{}}
	s := NewStore(NewMemoryAdapter(), remote, testLogger())

	var loadingDuring bool
	remote.onFetch = func() { loadingDuring = s.Loading() }

	s.SyncWithServer(context.Background())

	assert.True(t, loadingDuring)
	assert.False(t, s.Loading())
}

func TestSyncWithServer_FailureLeavesStateUntouched(t *testing.T) {
	remote := &recordingSyncer{fail: true}
	s := NewStore(NewMemoryAdapter(), remote, testLogger())
	s.Add(silkDress())

	s.SyncWithServer(context.Background())

	assert.Equal(t, 1, s.Count())
	assert.True(t, s.Contains("p1"))
	assert.False(t, s.Loading())
	assert.Empty(t, s.Err())
}

func TestSyncWithServer_SupersededCallLastWriteWins(t *testing.T) {
	remote := &recordingSyncer{items: []Item{{ProductID: "from-second"}}}
	s := NewStore(NewMemoryAdapter(), remote, testLogger())

	release := make(chan struct{})
	var calls int32
	remote.onFetch = func() {
		// Only the first call blocks; the second overtakes it.
		if atomic.AddInt32(&calls, 1) == 1 {
			<-release
		}
	}

	done := make(chan struct{})
	go func() {
		s.SyncWithServer(context.Background())
		close(done)
	}()
	for atomic.LoadInt32(&calls) == 0 {
		time.Sleep(time.Millisecond)
	}

	s.SyncWithServer(context.Background())
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "from-second", items[0].ProductID)

	// Let the first, superseded call resolve now; being the later writer,
	// its result replaces the second call's.
	remote.mu.Lock()
	remote.items = []Item{{ProductID: "from-first"}}
	remote.mu.Unlock()
	close(release)
	<-done

	items = s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "from-first", items[0].ProductID)
	assert.False(t, s.Loading())
}

// ----------------------------------------------------------------------------
// Concrete scenario
// ----------------------------------------------------------------------------

func TestScenario_DoubleClickThenToggleThenClear(t *testing.T) {
	s := NewStore(NewMemoryAdapter(), nil, testLogger())

	s.Add(ItemInput{ProductID: "p1", Name: "Silk Dress", Price: 3450})
	assert.Equal(t, 1, s.Count())

	s.Add(ItemInput{ProductID: "p1", Name: "Silk Dress", Price: 3450}) // double-click
	assert.Equal(t, 1, s.Count())

	s.Toggle(ItemInput{ProductID: "p1", Name: "Silk Dress", Price: 3450})
	assert.Zero(t, s.Count())

	s.Clear() // clear on empty
	assert.Zero(t, s.Count())
	assert.Empty(t, s.Err())
}

// ----------------------------------------------------------------------------
// Concurrency smoke test
// ----------------------------------------------------------------------------

func TestStore_ConcurrentUse(t *testing.T) {
	remote := &recordingSyncer{items: []Item{}}
	s := NewStore(NewMemoryAdapter(), remote, testLogger())

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				id := fmt.Sprintf("p%d-%d", g, i)
				s.Add(ItemInput{ProductID: id})
				s.Contains(id)
				s.Toggle(ItemInput{ProductID: id})
				s.Count()
			}
		}(g)
	}
	wg.Wait()
	s.Flush()

	// Every add was followed by a toggle-off, so the store ends empty.
	assert.Zero(t, s.Count())
	assert.Empty(t, s.Err())
}
