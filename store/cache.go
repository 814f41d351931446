package store

import (
	"bytes"

	"github.com/google/btree"
)

// btreeDegree is the branching factor of the pending writes tree. An
// operation writes a handful of keys, so a small degree is enough.
const btreeDegree = 8

// CacheWrap keeps the writes of a single operation in memory. Reads see the
// pending writes first and fall back to the parent store. Write applies all
// pending writes to the parent in ascending key order, so that the same
// operation always produces the same sequence of writes.
type CacheWrap struct {
	parent  KVStore
	pending *btree.BTree
}

var _ KVCacheWrap = (*CacheWrap)(nil)

// NewCacheWrap returns an empty cache over the parent store.
func NewCacheWrap(parent KVStore) *CacheWrap {
	return &CacheWrap{
		parent:  parent,
		pending: btree.New(btreeDegree),
	}
}

// pendingWrite is a key set or deleted in a cache wrap.
type pendingWrite struct {
	key     []byte
	value   []byte
	deleted bool
}

func (w *pendingWrite) Less(than btree.Item) bool {
	return bytes.Compare(w.key, than.(*pendingWrite).key) < 0
}

func (c *CacheWrap) lookup(key []byte) (*pendingWrite, bool) {
	item := c.pending.Get(&pendingWrite{key: key})
	if item == nil {
		return nil, false
	}
	return item.(*pendingWrite), true
}

// Get returns the pending value of the key, or the parent value if the key
// was not written.
func (c *CacheWrap) Get(key []byte) ([]byte, error) {
	if w, ok := c.lookup(key); ok {
		if w.deleted {
			return nil, nil
		}
		return w.value, nil
	}
	return c.parent.Get(key)
}

// Has follows the same rules as Get.
func (c *CacheWrap) Has(key []byte) (bool, error) {
	if w, ok := c.lookup(key); ok {
		return !w.deleted, nil
	}
	return c.parent.Has(key)
}

// Set panics on a nil key.
func (c *CacheWrap) Set(key, value []byte) error {
	if key == nil {
		panic("nil key")
	}
	c.pending.ReplaceOrInsert(&pendingWrite{key: key, value: value})
	return nil
}

// Delete panics on a nil key.
func (c *CacheWrap) Delete(key []byte) error {
	if key == nil {
		panic("nil key")
	}
	c.pending.ReplaceOrInsert(&pendingWrite{key: key, deleted: true})
	return nil
}

// NewBatch returns a batch writing into this cache.
func (c *CacheWrap) NewBatch() Batch {
	return NewBatch(c)
}

// CacheWrap nests another cache over this one.
func (c *CacheWrap) CacheWrap() KVCacheWrap {
	return NewCacheWrap(c)
}

// Write moves all pending writes to the parent store and empties the cache.
func (c *CacheWrap) Write() error {
	b := c.parent.NewBatch()
	var err error
	c.pending.Ascend(func(item btree.Item) bool {
		w := item.(*pendingWrite)
		if w.deleted {
			err = b.Delete(w.key)
		} else {
			err = b.Set(w.key, w.value)
		}
		return err == nil
	})
	c.Discard()
	if err != nil {
		return err
	}
	return b.Write()
}

// Discard drops all pending writes.
func (c *CacheWrap) Discard() {
	c.pending.Clear(false)
}

// Cacheable adds cache wrapping to a store that does not provide it.
type Cacheable struct {
	KVStore
}

var _ CacheableKVStore = Cacheable{}

func (c Cacheable) CacheWrap() KVCacheWrap {
	return NewCacheWrap(c.KVStore)
}

// MemStore returns a store that keeps everything in memory. Its content is
// lost with the process, so it is meant for tests and queries.
func MemStore() CacheableKVStore {
	return Cacheable{KVStore: make(mapStore)}
}

type mapStore map[string][]byte

func (m mapStore) Get(key []byte) ([]byte, error) {
	return m[string(key)], nil
}

func (m mapStore) Has(key []byte) (bool, error) {
	_, ok := m[string(key)]
	return ok, nil
}

func (m mapStore) Set(key, value []byte) error {
	if key == nil {
		panic("nil key")
	}
	m[string(key)] = value
	return nil
}

func (m mapStore) Delete(key []byte) error {
	if key == nil {
		panic("nil key")
	}
	delete(m, string(key))
	return nil
}

func (m mapStore) NewBatch() Batch {
	return NewBatch(m)
}
