package payday

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	// try logger with default
	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	// block time - uninitialized
	_, err := BlockTime(ctx)
	assert.Error(t, err)

	now := time.Unix(1500000000, 0)
	ctx = WithBlockTime(ctx, now)
	got, err := BlockTime(ctx)
	assert.NoError(t, err)
	assert.Equal(t, now, got)
	// no reset
	assert.Panics(t, func() { WithBlockTime(ctx, now) })

	// changing the info, should modify the logger, but not the time
	ctx2 := WithLogInfo(ctx, "foo", "bar")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))
	got, _ = BlockTime(ctx2)
	assert.Equal(t, now, got)

	_, ok := GetOperation(ctx)
	assert.False(t, ok)
	seq, ok := GetOperation(WithOperation(ctx, 12))
	assert.True(t, ok)
	assert.Equal(t, int64(12), seq)
}

func TestIsExpired(t *testing.T) {
	now := AsUnixTime(time.Now())
	ctx := WithBlockTime(context.Background(), now.Time())

	future := AsUnixTime(now.Time().Add(5 * time.Minute))
	if IsExpired(ctx, future) {
		t.Fatal("future is expired")
	}

	past := AsUnixTime(now.Time().Add(-5 * time.Minute))
	if !IsExpired(ctx, past) {
		t.Fatal("past is not expired")
	}

	if !IsExpired(ctx, now) {
		t.Fatal("when expiration time is equal to now it is expected to be expired")
	}

	assert.Panics(t, func() { IsExpired(context.Background(), now) })
}
