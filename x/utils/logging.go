package utils

import (
	"time"

	"github.com/iov-one/payday"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes one entry per operation to the context logger: failures
// at error level, deliveries at info and checks at debug.
type Logging struct{}

var _ payday.Decorator = Logging{}

func NewLogging() Logging { return Logging{} }

func (Logging) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx, next payday.Checker) (*payday.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	entry := opLogger(ctx, tx, start)
	switch {
	case err != nil:
		entry.Error("Check failed", "err", err)
	default:
		entry.Debug("Checked", "log", res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx, next payday.Deliverer) (*payday.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	entry := opLogger(ctx, tx, start)
	switch {
	case err != nil:
		entry.Error("Deliver failed", "err", err)
	default:
		entry.Info("Delivered", "log", res.Log)
	}
	return res, err
}

func opLogger(ctx payday.Context, tx payday.Tx, start time.Time) log.Logger {
	l := payday.GetLogger(ctx).With(
		"path", payday.GetPath(tx),
		"took", time.Since(start).Round(time.Microsecond),
	)
	if op, ok := payday.GetOperation(ctx); ok {
		l = l.With("op", op)
	}
	return l
}
