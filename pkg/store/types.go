package store

import "time"

// Config holds configuration for opening a Store.
type Config struct {
	DataDir       string        // Directory for the pebble database.
	FsyncInterval time.Duration // 0 means fsync on every write.
}

// KVError represents a store error with a fixed, comparable message, so
// callers can compare it against the ErrXxx sentinels with ==.
type KVError struct {
	Message string
}

func (e *KVError) Error() string {
	return e.Message
}

var (
	ErrKeyNotFound = &KVError{"key not found"}
	ErrInvalidKey  = &KVError{"invalid key"}
	ErrCorruption  = &KVError{"data corruption detected"}
	ErrClosed      = &KVError{"store is closed"}
)

// Iterator provides streaming, ordered access to the results of a Scan.
type Iterator interface {
	// Next advances the iterator and reports whether a result is available.
	Next() bool
	// Key returns the full tuple key (including the collection prefix) of
	// the current result.
	Key() []byte
	// Value returns the raw value bytes of the current result.
	Value() []byte
	// Close releases resources held by the iterator.
	Close() error
}
