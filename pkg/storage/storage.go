// Package storage wraps the pebble ordered key-value engine with the
// minimal raw-bytes surface pkg/store needs: get/set/delete and a
// prefix-bounded iterator. It holds no opinion about what the keys mean;
// pkg/store is the layer that interprets them as encoded tuples.
package storage

import (
	"fmt"

	"github.com/cockroachdb/pebble"
)

// Engine is a pebble-backed byte store.
type Engine struct {
	db *pebble.DB
}

// Open opens (creating if absent) a pebble database rooted at path.
func Open(path string) (*Engine, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	return &Engine{db: db}, nil
}

// Get returns the value for key, or (nil, false) if it is absent.
func (e *Engine) Get(key []byte) ([]byte, bool, error) {
	v, closer, err := e.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: get: %w", err)
	}
	out := append([]byte(nil), v...)
	if cerr := closer.Close(); cerr != nil {
		return nil, false, fmt.Errorf("storage: get: %w", cerr)
	}
	return out, true, nil
}

// Set writes key/value, fsyncing per sync.
func (e *Engine) Set(key, value []byte, sync bool) error {
	opts := pebble.NoSync
	if sync {
		opts = pebble.Sync
	}
	if err := e.db.Set(key, value, opts); err != nil {
		return fmt.Errorf("storage: set: %w", err)
	}
	return nil
}

// Delete removes key. It is not an error if key is already absent.
func (e *Engine) Delete(key []byte, sync bool) error {
	opts := pebble.NoSync
	if sync {
		opts = pebble.Sync
	}
	if err := e.db.Delete(key, opts); err != nil {
		return fmt.Errorf("storage: delete: %w", err)
	}
	return nil
}

// Iterator walks keys in ascending order within [lower, upper).
type Iterator struct {
	it *pebble.Iterator
}

// NewIterator returns an Iterator bounded to [lower, upper), positioned
// before the first matching key; call Next to advance onto it.
func (e *Engine) NewIterator(lower, upper []byte) (*Iterator, error) {
	it, err := e.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, fmt.Errorf("storage: new iterator: %w", err)
	}
	return &Iterator{it: it}, nil
}

// Next advances the iterator and reports whether a key is now positioned.
func (i *Iterator) Next() bool {
	if i.it.Valid() {
		return i.it.Next()
	}
	return i.it.First()
}

// Key returns a copy of the current key.
func (i *Iterator) Key() []byte {
	return append([]byte(nil), i.it.Key()...)
}

// Value returns a copy of the current value.
func (i *Iterator) Value() []byte {
	return append([]byte(nil), i.it.Value()...)
}

// Close releases the iterator.
func (i *Iterator) Close() error {
	return i.it.Close()
}

// Close releases the underlying pebble database.
func (e *Engine) Close() error {
	if err := e.db.Close(); err != nil {
		return fmt.Errorf("storage: close: %w", err)
	}
	return nil
}
