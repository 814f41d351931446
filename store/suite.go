package store

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/iov-one/payday/weavetest/assert"
)

// StoreFactory returns a fresh store and a function releasing it.
type StoreFactory func() (CacheableKVStore, func())

// RunCacheTests runs the cache wrap behaviour tests against stores
// created by newStore. Every CacheableKVStore implementation is expected to
// pass them.
func RunCacheTests(t *testing.T, newStore StoreFactory) {
	t.Run("write and discard", func(t *testing.T) { testWriteAndDiscard(t, newStore) })
	t.Run("shadowed values", func(t *testing.T) { testShadowedValues(t, newStore) })
	t.Run("random nested writes", func(t *testing.T) { testRandomNestedWrites(t, newStore) })
}

func testWriteAndDiscard(t *testing.T, newStore StoreFactory) {
	db, cleanup := newStore()
	defer cleanup()

	assert.Nil(t, db.Set([]byte("cycle"), []byte("1")))

	discarded := db.CacheWrap()
	assert.Nil(t, discarded.Set([]byte("holder"), []byte("1500")))
	assertValue(t, discarded, "holder", "1500")
	assertValue(t, db, "holder", "")
	discarded.Discard()
	assertValue(t, discarded, "holder", "")

	written := db.CacheWrap()
	assert.Nil(t, written.Set([]byte("holder"), []byte("3500")))
	assert.Nil(t, written.Delete([]byte("cycle")))
	assertValue(t, db, "cycle", "1")
	assert.Nil(t, written.Write())
	assertValue(t, db, "cycle", "")
	assertValue(t, db, "holder", "3500")

	// A written cache is empty and reads through to the parent.
	assert.Nil(t, db.Set([]byte("cycle"), []byte("2")))
	assertValue(t, written, "cycle", "2")
}

func testShadowedValues(t *testing.T, newStore StoreFactory) {
	cases := map[string]struct {
		parent map[string]string
		ops    []batchOp
		want   map[string]string
	}{
		"overwrite": {
			parent: map[string]string{"a": "1"},
			ops:    []batchOp{{key: []byte("a"), value: []byte("2")}},
			want:   map[string]string{"a": "2"},
		},
		"delete an existing key": {
			parent: map[string]string{"a": "1", "b": "2"},
			ops:    []batchOp{{key: []byte("a"), del: true}},
			want:   map[string]string{"a": "", "b": "2"},
		},
		"set after delete": {
			parent: map[string]string{"a": "1"},
			ops: []batchOp{
				{key: []byte("a"), del: true},
				{key: []byte("a"), value: []byte("3")},
			},
			want: map[string]string{"a": "3"},
		},
		"delete a missing key": {
			parent: map[string]string{"a": "1"},
			ops:    []batchOp{{key: []byte("z"), del: true}},
			want:   map[string]string{"a": "1", "z": ""},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db, cleanup := newStore()
			defer cleanup()
			for k, v := range tc.parent {
				assert.Nil(t, db.Set([]byte(k), []byte(v)))
			}

			cache := db.CacheWrap()
			b := cache.NewBatch()
			for _, op := range tc.ops {
				if op.del {
					assert.Nil(t, b.Delete(op.key))
				} else {
					assert.Nil(t, b.Set(op.key, op.value))
				}
			}
			assert.Nil(t, b.Write())

			for k, v := range tc.parent {
				assertValue(t, db, k, v)
			}
			for k, v := range tc.want {
				assertValue(t, cache, k, v)
			}
			assert.Nil(t, cache.Write())
			for k, v := range tc.want {
				assertValue(t, db, k, v)
			}
		})
	}
}

// testRandomNestedWrites compares two nested cache layers with a plain map
// after a series of random writes.
func testRandomNestedWrites(t *testing.T, newStore StoreFactory) {
	db, cleanup := newStore()
	defer cleanup()

	rnd := rand.New(rand.NewSource(42))
	key := func() string { return fmt.Sprintf("holder/%02d", rnd.Intn(40)) }

	base := make(map[string]string)
	for i := 0; i < 30; i++ {
		k, v := key(), fmt.Sprint(rnd.Uint32())
		base[k] = v
		assert.Nil(t, db.Set([]byte(k), []byte(v)))
	}

	outer := db.CacheWrap()
	inner := outer.CacheWrap()
	nested := make(map[string]string, len(base))
	for k, v := range base {
		nested[k] = v
	}
	for i := 0; i < 60; i++ {
		k := key()
		if rnd.Intn(3) == 0 {
			delete(nested, k)
			assert.Nil(t, inner.Delete([]byte(k)))
		} else {
			v := fmt.Sprint(rnd.Uint32())
			nested[k] = v
			assert.Nil(t, inner.Set([]byte(k), []byte(v)))
		}
	}

	for i := 0; i < 40; i++ {
		k := fmt.Sprintf("holder/%02d", i)
		assertValue(t, inner, k, nested[k])
		assertValue(t, outer, k, base[k])
	}

	assert.Nil(t, inner.Write())
	assert.Nil(t, outer.Write())
	for i := 0; i < 40; i++ {
		k := fmt.Sprintf("holder/%02d", i)
		assertValue(t, db, k, nested[k])
	}
}

// assertValue checks Get and Has of a key. An empty want means the key must
// not exist.
func assertValue(t testing.TB, db ReadOnlyKVStore, key, want string) {
	t.Helper()
	got, err := db.Get([]byte(key))
	assert.Nil(t, err)
	has, err := db.Has([]byte(key))
	assert.Nil(t, err)
	if want == "" {
		if got != nil || has {
			t.Fatalf("key %q must not exist, got %q", key, got)
		}
		return
	}
	if !has || string(got) != want {
		t.Fatalf("key %q: want %q, got %q", key, want, got)
	}
}
