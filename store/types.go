package store

import "github.com/iov-one/payday"

// Aliases of the storage interfaces, so that implementations in this package
// and below read without the payday prefix.
type (
	ReadOnlyKVStore  = payday.ReadOnlyKVStore
	SetDeleter       = payday.SetDeleter
	KVStore          = payday.KVStore
	Batch            = payday.Batch
	CacheableKVStore = payday.CacheableKVStore
	KVCacheWrap      = payday.KVCacheWrap
	CommitKVStore    = payday.CommitKVStore
	CommitID         = payday.CommitID
)
