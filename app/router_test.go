package app

import (
	"context"
	"testing"

	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	good := &weavetest.Handler{}
	bad := &weavetest.Handler{
		CheckErr:   errors.ErrState,
		DeliverErr: errors.ErrState,
	}
	r.Handle(&weavetest.Msg{RoutePath: "test/good"}, good)
	r.Handle(&weavetest.Msg{RoutePath: "test/bad"}, bad)

	assert.Panics(t, func() { r.Handle(&weavetest.Msg{RoutePath: "test/good"}, good) })
	assert.Panics(t, func() { r.Handle(&weavetest.Msg{RoutePath: "l:7"}, good) })

	ctx := context.Background()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/good"}}
	_, err := r.Check(ctx, nil, tx)
	require.NoError(t, err)
	_, err = r.Deliver(ctx, nil, tx)
	require.NoError(t, err)
	assert.Equal(t, 2, good.CallCount())

	tx = &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/bad"}}
	_, err = r.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrState.Is(err))
	assert.Equal(t, 1, bad.DeliverCallCount())

	tx = &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/missing"}}
	_, err = r.Check(ctx, nil, tx)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrNotFound.Is(err))

	tx = &weavetest.Tx{Err: errors.ErrMsg}
	_, err = r.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrMsg.Is(err))
}
