package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/store"
	"github.com/iov-one/payday/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))

	ctx := payday.WithLogger(context.Background(), logger)
	ctx = payday.WithOperation(ctx, 42)
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "rewards/start"}}

	h := &weavetest.Handler{DeliverResult: payday.DeliverResult{Log: "cycle started"}}
	_, err := NewLogging().Deliver(ctx, db, tx, h)
	assert.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.Contains(out, "cycle started"), out)
	assert.True(t, strings.Contains(out, "path=rewards/start"), out)
	assert.True(t, strings.Contains(out, "op=42"), out)

	buf.Reset()
	h = &weavetest.Handler{DeliverErr: errors.ErrState}
	_, err = NewLogging().Deliver(ctx, db, tx, h)
	assert.True(t, errors.ErrState.Is(err))
	assert.True(t, strings.HasPrefix(buf.String(), "E["), buf.String())
}
