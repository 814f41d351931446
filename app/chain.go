package app

import (
	"reflect"

	"github.com/iov-one/payday"
)

// Decorators is a stack of decorators waiting for the handler they wrap.
// The first decorator is the outermost one, so
//
//   ChainDecorators(logging, recovery, sigs).WithHandler(router)
//
// logs every operation, recovers panics raised by signature checks and by
// the router, and only calls the router for signed operations.
type Decorators []payday.Decorator

// ChainDecorators starts a stack. Nil decorators are skipped, which allows
// optional decorators to be passed as they are.
func ChainDecorators(ds ...payday.Decorator) Decorators {
	return Decorators(nil).Chain(ds...)
}

// Chain returns a new stack with ds added inside the existing decorators.
func (d Decorators) Chain(ds ...payday.Decorator) Decorators {
	res := append(Decorators(nil), d...)
	for _, dec := range ds {
		if dec == nil {
			continue
		}
		if v := reflect.ValueOf(dec); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		res = append(res, dec)
	}
	return res
}

// WithHandler closes the stack around h.
func (d Decorators) WithHandler(h payday.Handler) payday.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = decorated{dec: d[i], next: h}
	}
	return h
}

type decorated struct {
	dec  payday.Decorator
	next payday.Handler
}

func (s decorated) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.CheckResult, error) {
	return s.dec.Check(ctx, db, tx, s.next)
}

func (s decorated) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.DeliverResult, error) {
	return s.dec.Deliver(ctx, db, tx, s.next)
}
