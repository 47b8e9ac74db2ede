package domain

// KeyValue is the durable key-value slot the history store persists into.
// Implemented by store.Store (bbolt, or memory-only when no directory is given).
type KeyValue interface {
	// Get returns a copy of the stored value and whether the key exists.
	// A read failure is an error, never a missing key.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value
	Set(key string, value []byte) error

	// Delete removes key; deleting a missing key is not an error
	Delete(key string) error
}
