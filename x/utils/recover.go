package utils

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
)

// Recovery turns a panic of the wrapped handler into an ErrPanic result.
// The engine discards the changes of a failed operation, so a broken
// handler costs one operation instead of the process.
type Recovery struct{}

var _ payday.Decorator = Recovery{}

func NewRecovery() Recovery { return Recovery{} }

func (Recovery) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx, next payday.Checker) (res *payday.CheckResult, err error) {
	defer errors.Recover(&err)
	res, err = next.Check(ctx, db, tx)
	return
}

func (Recovery) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx, next payday.Deliverer) (res *payday.DeliverResult, err error) {
	defer errors.Recover(&err)
	res, err = next.Deliver(ctx, db, tx)
	return
}
