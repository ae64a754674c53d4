// Package store layers collections of tuple-keyed records on top of
// pkg/storage's raw pebble engine. A collection is nothing more than a
// short text element prepended to every key in it, which is enough to give
// each collection its own ordered keyspace and its own prefix-bounded scan
// range, without any separate namespacing mechanism.
package store

import (
	"fmt"
	"time"

	"github.com/ssargent/tuplestore/pkg/storage"
	"github.com/ssargent/tuplestore/pkg/tuple"
)

// Store is a tuple-keyed view over a single pebble database.
type Store struct {
	engine        *storage.Engine
	fsyncInterval time.Duration
	isOpen        bool
}

// Open opens (creating if absent) the pebble database at cfg.DataDir.
func Open(cfg Config) (*Store, error) {
	eng, err := storage.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	return &Store{engine: eng, fsyncInterval: cfg.FsyncInterval, isOpen: true}, nil
}

// collectionPrefix returns the encoding shared by every key in collection.
func collectionPrefix(collection string) []byte {
	return tuple.Pack(nil, tuple.Tuple{tuple.Text(collection)})
}

func (s *Store) key(collection string, t tuple.Tuple) []byte {
	return tuple.Pack(collectionPrefix(collection), t)
}

func (s *Store) sync() bool {
	return s.fsyncInterval == 0
}

// Put writes value under the key formed by (collection, t).
func (s *Store) Put(collection string, t tuple.Tuple, value []byte) error {
	if !s.isOpen {
		return ErrClosed
	}
	return s.engine.Set(s.key(collection, t), value, s.sync())
}

// Get returns the value stored under (collection, t). It returns
// ErrKeyNotFound if no such key exists.
func (s *Store) Get(collection string, t tuple.Tuple) ([]byte, error) {
	if !s.isOpen {
		return nil, ErrClosed
	}
	v, ok, err := s.engine.Get(s.key(collection, t))
	if err != nil {
		return nil, fmt.Errorf("store: get: %w", err)
	}
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

// Delete removes the key formed by (collection, t). It is not an error if
// the key is already absent.
func (s *Store) Delete(collection string, t tuple.Tuple) error {
	if !s.isOpen {
		return ErrClosed
	}
	return s.engine.Delete(s.key(collection, t), s.sync())
}

// GetByKey fetches a value by its full, already-collection-prefixed key,
// as produced by (Store).RecordKey. This is what pkg/index's secondary
// indexes use to resolve a primary key back to its record without the
// caller needing to know the record's collection and tuple separately.
func (s *Store) GetByKey(k tuple.Key) ([]byte, error) {
	if !s.isOpen {
		return nil, ErrClosed
	}
	v, ok, err := s.engine.Get(k.ToRaw())
	if err != nil {
		return nil, fmt.Errorf("store: get: %w", err)
	}
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

// RecordKey returns the full key, including its collection prefix, that
// (collection, t) maps to. Secondary indexes store this as their primary
// key so a hit can be resolved with GetByKey alone.
func (s *Store) RecordKey(collection string, t tuple.Tuple) tuple.Key {
	return tuple.NewKey(s.key(collection, t))
}

// PutBatch encodes values as an offset table (see tuple.PackOffsets) and
// stores them as one value under (collection, t), so a caller that wants
// several small sub-records to share one pebble write/read pays for one
// key instead of many.
func (s *Store) PutBatch(collection string, t tuple.Tuple, values [][]byte) error {
	lengths := make([]uint64, len(values))
	var total int
	for i, v := range values {
		lengths[i] = uint64(len(v))
		total += len(v)
	}
	offsetTable := tuple.PackOffsets(lengths)
	buf := make([]byte, 0, len(offsetTable)+total)
	buf = append(buf, offsetTable...)
	for _, v := range values {
		buf = append(buf, v...)
	}
	return s.Put(collection, t, buf)
}

// GetBatch reads back the value written by PutBatch and splits it into its
// constituent sub-records using the leading offset table.
func (s *Store) GetBatch(collection string, t tuple.Tuple) ([][]byte, error) {
	buf, err := s.Get(collection, t)
	if err != nil {
		return nil, err
	}
	offsets, consumed, err := tuple.UnpackOffsets(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: batch offset table: %v", ErrCorruption, err)
	}
	body := buf[consumed:]
	out := make([][]byte, len(offsets)-1)
	for i := 0; i+1 < len(offsets); i++ {
		lo, hi := offsets[i], offsets[i+1]
		if hi > uint64(len(body)) {
			return nil, fmt.Errorf("%w: batch offset out of range", ErrCorruption)
		}
		out[i] = body[lo:hi]
	}
	return out, nil
}

// Scan returns an Iterator over every key in collection whose tuple starts
// with prefix, in ascending key order. Pass a nil/empty prefix to scan the
// whole collection.
func (s *Store) Scan(collection string, prefix tuple.Tuple) (Iterator, error) {
	if !s.isOpen {
		return nil, ErrClosed
	}
	lower := s.key(collection, prefix)
	upper := append([]byte(nil), lower...)
	upper = incrementBytes(upper)
	it, err := s.engine.NewIterator(lower, upper)
	if err != nil {
		return nil, fmt.Errorf("store: scan: %w", err)
	}
	return &engineIterator{it: it}, nil
}

// incrementBytes returns the smallest byte string strictly greater than b
// under every byte string that has b as a prefix, used to turn a prefix
// into an exclusive upper bound. It grows the buffer by one byte (0xFF)
// only in the degenerate all-0xFF case.
func incrementBytes(b []byte) []byte {
	out := append([]byte(nil), b...)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] < 0xFF {
			out[i]++
			return out[:i+1]
		}
	}
	return append(out, 0xFF)
}

type engineIterator struct {
	it *storage.Iterator
}

func (i *engineIterator) Next() bool    { return i.it.Next() }
func (i *engineIterator) Key() []byte   { return i.it.Key() }
func (i *engineIterator) Value() []byte { return i.it.Value() }
func (i *engineIterator) Close() error  { return i.it.Close() }

// Close releases the underlying pebble database.
func (s *Store) Close() error {
	if !s.isOpen {
		return nil
	}
	s.isOpen = false
	return s.engine.Close()
}
