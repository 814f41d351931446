package iavl

import (
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

const (
	// DefaultCacheSize is the number of tree nodes kept in memory.
	DefaultCacheSize = 10000
	// DefaultHistory is how many committed versions are kept on disk.
	DefaultHistory = 100
)

// CommitStore is the versioned state of a node, an iavl tree stored in
// goleveldb. Each delivered operation is one version.
type CommitStore struct {
	tree    *iavl.MutableTree
	db      dbm.DB
	history int64
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore opens the name database in dir. An empty dir keeps the
// state in memory.
func NewCommitStore(dir, name string) *CommitStore {
	var db dbm.DB = dbm.NewMemDB()
	if dir != "" {
		db = dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	}
	return &CommitStore{
		tree:    iavl.NewMutableTree(db, DefaultCacheSize),
		db:      db,
		history: DefaultHistory,
	}
}

// Get reads the last committed version, ignoring uncommitted writes.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val, nil
}

// Commit saves the working tree as a new version and prunes the version
// that fell out of the history.
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if old := version - s.history; s.history > 0 && old > 0 && s.tree.VersionExists(old) {
		if err := s.tree.DeleteVersion(old); err != nil {
			return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "prune version %d: %s", old, err)
		}
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion restores the newest complete version. Writes of an
// interrupted commit are lost.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.tree.Version(), Hash: s.tree.Hash()}, nil
}

func (s *CommitStore) Close() {
	s.db.Close()
}

// Adapter gives direct access to the working tree. Its writes cannot be
// rolled back, they either get committed or are lost on restart.
func (s *CommitStore) Adapter() store.CacheableKVStore {
	return store.Cacheable{KVStore: tree{s.tree}}
}

// CacheWrap stages writes on top of the working tree.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// tree is the store.KVStore view of the working tree.
type tree struct {
	t *iavl.MutableTree
}

var _ store.KVStore = tree{}

func (a tree) Get(key []byte) ([]byte, error) {
	_, val := a.t.Get(key)
	return val, nil
}

func (a tree) Has(key []byte) (bool, error) {
	return a.t.Has(key), nil
}

func (a tree) Set(key, value []byte) error {
	a.t.Set(key, value)
	return nil
}

func (a tree) Delete(key []byte) error {
	a.t.Remove(key)
	return nil
}

func (a tree) NewBatch() store.Batch {
	return store.NewBatch(a)
}
