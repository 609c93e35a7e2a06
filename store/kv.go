// ABOUTME: Badger-backed key-value storage for on-device persistence
// ABOUTME: Thread-safe wrapper around badger with XDG default path handling
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v3"
)

// AppName is the application name used for on-device storage paths.
const AppName = "mobitec"

// KV wraps a badger database with a mutex so read-modify-write sequences
// on a slot can be made atomic by callers holding the store lock.
type KV struct {
	db *badger.DB
	mu sync.RWMutex
}

// DefaultPath returns the XDG-compliant location of the record database.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "records")
}

// OpenKV opens (or creates) the badger database at path.
func OpenKV(path string) (*KV, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open record database: %w", err)
	}

	return &KV{db: db}, nil
}

// Close closes the underlying database.
func (k *KV) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.db.Close()
}

// Get retrieves a value by key. A missing key returns (nil, nil).
func (k *KV) Get(key []byte) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var value []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, nil
}

// Set stores a value under key, overwriting any previous value.
func (k *KV) Set(key, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	err := k.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (k *KV) Delete(key []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	err := k.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
