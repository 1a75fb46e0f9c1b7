// Package store defines the keyed document store and its implementations.
package store

// Store is the interface that all backing stores must implement.
// It holds arbitrary JSON-compatible values under flat string keys.
type Store interface {
	// Get returns the value stored under key, or nil if the key has
	// never been written. A missing key is not an error.
	Get(key string) (any, error)

	// Put inserts or replaces the value under key.
	// On failure the operation was not applied.
	Put(key string, value any) error

	// Delete removes the entry for key. Get afterwards returns nil.
	Delete(key string) error

	// Health issues a trivial read against the backing medium.
	Health() error
}
