// Package store implements the storefront's persistent client-state layer:
// a cart store and a reservation store, each an ordered in-memory collection
// written through to a durable key-value medium on every mutation and
// rehydrated from it at startup.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Namespaced keys under which each store persists its state. The two stores
// share the durable medium by key only; no other coordination exists.
const (
	CartKey        = "cart-storage"
	ReservationKey = "shop-reservations"
)

// Adapter is the narrow contract a store binds to for durability.
// Implementations can use the local filesystem, Redis, or any other
// key-value medium.
type Adapter interface {
	// Load reads the blob stored under key. A key that was never written
	// yields (nil, nil), not an error.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save writes the blob under key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes the blob under key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}

// FileAdapter implements Adapter on the local filesystem, one file per key.
// This is the default medium for single-node deployments.
type FileAdapter struct {
	basePath string
}

// NewFileAdapter creates a filesystem-backed adapter rooted at basePath,
// creating the directory if needed.
func NewFileAdapter(basePath string) (*FileAdapter, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return &FileAdapter{basePath: basePath}, nil
}

func (a *FileAdapter) path(key string) string {
	return filepath.Join(a.basePath, key+".json")
}

// Load reads the file for key. A missing file yields (nil, nil).
func (a *FileAdapter) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(a.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	return data, nil
}

// Save writes the blob for key. The write goes through a temp file and
// rename so a crash mid-write cannot leave a truncated blob behind.
func (a *FileAdapter) Save(ctx context.Context, key string, data []byte) error {
	tmp := a.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	if err := os.Rename(tmp, a.path(key)); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}

// Delete removes the file for key, ignoring a file that is already gone.
func (a *FileAdapter) Delete(ctx context.Context, key string) error {
	err := os.Remove(a.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state file: %w", err)
	}

	return nil
}

// MemoryAdapter implements Adapter on a map. It backs tests and the degraded
// mode where no durable medium is available: stores keep working, state just
// does not survive a restart.
type MemoryAdapter struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryAdapter creates an empty in-memory adapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{blobs: make(map[string][]byte)}
}

func (a *MemoryAdapter) Load(ctx context.Context, key string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	data, ok := a.blobs[key]
	if !ok {
		return nil, nil
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (a *MemoryAdapter) Save(ctx context.Context, key string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	a.blobs[key] = cp
	return nil
}

func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.blobs, key)
	return nil
}
