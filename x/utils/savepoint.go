package utils

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
)

// Savepoint runs the wrapped handler on a cache wrap of the store and keeps
// its writes only when it succeeds. It is disabled until OnCheck or
// OnDeliver selects the phases it applies to.
type Savepoint struct {
	check, deliver bool
}

var _ payday.Decorator = Savepoint{}

func NewSavepoint() Savepoint { return Savepoint{} }

func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx, next payday.Checker) (*payday.CheckResult, error) {
	if !s.check {
		return next.Check(ctx, db, tx)
	}
	var res *payday.CheckResult
	err := atomically(db, func(cache payday.KVStore) (err error) {
		res, err = next.Check(ctx, cache, tx)
		return err
	})
	return res, err
}

func (s Savepoint) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx, next payday.Deliverer) (*payday.DeliverResult, error) {
	if !s.deliver {
		return next.Deliver(ctx, db, tx)
	}
	var res *payday.DeliverResult
	err := atomically(db, func(cache payday.KVStore) (err error) {
		res, err = next.Deliver(ctx, cache, tx)
		return err
	})
	return res, err
}

// atomically applies the writes of fn to db only if fn succeeds. A store
// that cannot be cache wrapped is passed to fn as it is.
func atomically(db payday.KVStore, fn func(payday.KVStore) error) error {
	cacheable, ok := db.(payday.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
