package store

import (
	"bytes"
	"sort"
)

// RecordingStore passes all writes to the wrapped store and remembers the
// last value written to every key. Writes made through a batch or a cache
// wrap are recorded once they reach this store.
type RecordingStore struct {
	KVStore
	// changes maps a key to the value written, nil for a delete.
	changes map[string][]byte
}

var _ CacheableKVStore = (*RecordingStore)(nil)

// NewRecordingStore returns a store recording all writes to db.
func NewRecordingStore(db KVStore) *RecordingStore {
	return &RecordingStore{
		KVStore: db,
		changes: make(map[string][]byte),
	}
}

func (r *RecordingStore) Set(key, value []byte) error {
	if err := r.KVStore.Set(key, value); err != nil {
		return err
	}
	r.changes[string(key)] = value
	return nil
}

func (r *RecordingStore) Delete(key []byte) error {
	if err := r.KVStore.Delete(key); err != nil {
		return err
	}
	r.changes[string(key)] = nil
	return nil
}

func (r *RecordingStore) NewBatch() Batch {
	return NewBatch(r)
}

func (r *RecordingStore) CacheWrap() KVCacheWrap {
	return NewCacheWrap(r)
}

// Changes returns the recorded writes.
func (r *RecordingStore) Changes() map[string][]byte {
	return r.changes
}

// ChangedKeys returns all written keys in ascending order.
func (r *RecordingStore) ChangedKeys() [][]byte {
	keys := make([][]byte, 0, len(r.changes))
	for k := range r.changes {
		keys = append(keys, []byte(k))
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i], keys[j]) < 0
	})
	return keys
}
