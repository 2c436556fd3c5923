package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Adapter is durable local storage for the full wishlist under one fixed
// key. Load after Save returns an equal sequence (round-trip fidelity).
type Adapter interface {
	// Load reads the persisted wishlist. A missing value yields an empty
	// sequence, not an error. An unparsable value yields a *ReadError.
	Load() ([]Item, error)

	// Save overwrites the persisted wishlist with the given sequence.
	// Failures yield a *WriteError.
	Save(items []Item) error
}

// ReadError indicates the stored wishlist could not be read or parsed. The
// store recovers by treating the wishlist as empty for the session; the
// stored value is left in place.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read wishlist storage: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError indicates the wishlist could not be persisted. The in-memory
// mutation that triggered the write stands.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write wishlist storage: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// FileAdapter stores the wishlist as a JSON file on disk. Writes go through
// a temp file and rename so a crash mid-write cannot corrupt the stored
// value.
type FileAdapter struct {
	path string
}

// NewFileAdapter creates a file-backed adapter writing to the given path.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

func (a *FileAdapter) Load() ([]Item, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Item{}, nil
		}
		return nil, &ReadError{Err: err}
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &ReadError{Err: err}
	}
	if items == nil {
		items = []Item{}
	}

	return items, nil
}

func (a *FileAdapter) Save(items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return &WriteError{Err: err}
	}

	dir := filepath.Dir(a.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(a.path)+".tmp")
	if err != nil {
		return &WriteError{Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return &WriteError{Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return &WriteError{Err: err}
	}

	if err := os.Rename(tmp.Name(), a.path); err != nil {
		_ = os.Remove(tmp.Name())
		return &WriteError{Err: err}
	}

	return nil
}

// MemoryAdapter stores the serialized wishlist in memory. Used in tests and
// as a fallback when no durable storage is available.
type MemoryAdapter struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryAdapter creates an empty in-memory adapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{}
}

func (a *MemoryAdapter) Load() ([]Item, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.data == nil {
		return []Item{}, nil
	}

	var items []Item
	if err := json.Unmarshal(a.data, &items); err != nil {
		return nil, &ReadError{Err: err}
	}
	if items == nil {
		items = []Item{}
	}

	return items, nil
}

func (a *MemoryAdapter) Save(items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return &WriteError{Err: err}
	}

	a.mu.Lock()
	a.data = data
	a.mu.Unlock()

	return nil
}

// Corrupt overwrites the stored value with bytes that do not parse as a
// wishlist. Test helper for the unreadable-storage path.
func (a *MemoryAdapter) Corrupt() {
	a.mu.Lock()
	a.data = []byte("{not json")
	a.mu.Unlock()
}
