package payday

// ReadOnlyKVStore reads state. A missing key reads as a nil value. A nil
// key is a programming error and panics.
type ReadOnlyKVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

// SetDeleter writes state. Both KVStore and Batch implement it.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the view of state every handler receives.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them in order on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// CacheableKVStore can stage writes in a cache wrap. The engine wraps the
// state once per operation, and the savepoint decorator wraps it again to
// discard the changes of a failed handler.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap overlays pending writes on the store it wraps. Reads see the
// pending writes. Write applies them to the parent, Discard drops them.
// A wrap can itself be wrapped.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root of the state. Changes are made
// through a cache wrap and become durable with Commit, which creates a new
// version.
type CommitKVStore interface {
	// Get reads the last committed version.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)

	// LoadLatestVersion restores the last complete version after a
	// restart.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID names a committed version by its number and state hash.
type CommitID struct {
	Version int64
	Hash    []byte
}
