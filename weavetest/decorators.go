package weavetest

import "github.com/iov-one/payday"

// calls counts the invocations of a mock.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Decorator is a payday.Decorator mock. It passes every call to the next
// handler unless the error of the called method is set. Calls are counted
// either way.
type Decorator struct {
	calls
	CheckErr   error
	DeliverErr error
}

var _ payday.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx, next payday.Checker) (*payday.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx, next payday.Deliverer) (*payday.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate wraps h with d.
func Decorate(h payday.Handler, d payday.Decorator) payday.Handler {
	return decorated{h: h, d: d}
}

type decorated struct {
	h payday.Handler
	d payday.Decorator
}

func (x decorated) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.CheckResult, error) {
	return x.d.Check(ctx, db, tx, x.h)
}

func (x decorated) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.DeliverResult, error) {
	return x.d.Deliver(ctx, db, tx, x.h)
}
