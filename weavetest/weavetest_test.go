package weavetest

import (
	"context"
	"testing"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/store"
	"github.com/iov-one/payday/weavetest/assert"
)

func TestDecorate(t *testing.T) {
	h := &Handler{WriteKey: []byte("k"), WriteValue: []byte("v")}
	d := &Decorator{}
	stack := Decorate(h, d)
	db := store.MemStore()
	ctx := context.Background()

	_, err := stack.Check(ctx, db, &Tx{})
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, db, &Tx{})
	assert.Nil(t, err)
	assert.Equal(t, 1, h.CheckCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
	assert.Equal(t, 2, d.CallCount())

	v, err := db.Get([]byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v"), v)

	// A failing decorator never reaches the handler.
	d.CheckErr = errors.ErrUnauthorized
	d.DeliverErr = errors.ErrNotFound
	_, err = stack.Check(ctx, db, &Tx{})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = stack.Deliver(ctx, db, &Tx{})
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.Equal(t, 2, h.CallCount())
	assert.Equal(t, 4, d.CallCount())
}

func TestHandlerPanics(t *testing.T) {
	h := &Handler{Panic: "boom"}
	assert.Panics(t, func() { _, _ = h.Deliver(context.Background(), store.MemStore(), &Tx{}) })
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestAuth(t *testing.T) {
	owner, other := NewCondition(), NewCondition()
	ctx := context.Background()

	a := &Auth{Signer: owner, Signers: []payday.Condition{other}}
	assert.Equal(t, []payday.Condition{owner, other}, a.GetConditions(ctx))
	assert.Equal(t, true, a.HasAddress(ctx, other.Address()))
	assert.Equal(t, false, a.HasAddress(ctx, RandomAddr()))

	ca := &CtxAuth{Key: "signer"}
	ctx = ca.SetConditions(ctx, owner)
	assert.Equal(t, true, ca.HasAddress(ctx, owner.Address()))
	assert.Equal(t, false, (&CtxAuth{Key: "other"}).HasAddress(ctx, owner.Address()))
}

func TestTx(t *testing.T) {
	cond := NewCondition()
	tx := &Tx{Msg: &Msg{RoutePath: "rewards/payout"}, Signers: []payday.Condition{cond}}

	msg, err := tx.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, "rewards/payout", msg.Path())
	assert.Equal(t, []payday.Condition{cond}, tx.GetSigners())
}
