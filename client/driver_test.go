package client

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/app"
	"github.com/iov-one/payday/coin"
	"github.com/iov-one/payday/crypto"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/store/iavl"
	"github.com/iov-one/payday/weavetest"
	"github.com/iov-one/payday/x"
	"github.com/iov-one/payday/x/cash"
	"github.com/iov-one/payday/x/rewards"
	"github.com/iov-one/payday/x/sigs"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testChain struct {
	engine    *app.Engine
	clock     clockwork.FakeClock
	authority *crypto.PrivateKey
	close     func()
}

func newTestChain(t *testing.T, balances map[string]uint64) *testChain {
	t.Helper()

	auth := x.ChainAuth(sigs.Authenticate{})
	ctrl := cash.NewController(cash.NewBucket())
	r := app.NewRouter()
	cash.RegisterRoutes(r, auth, ctrl)
	rewards.RegisterRoutes(r, auth, ctrl)
	stack := app.ChainDecorators(sigs.NewDecorator().AllowMissingSigs()).WithHandler(r)

	start := time.Date(2019, time.May, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	kv := iavl.NewCommitStore("", "test")
	engine, err := app.NewEngine(kv, stack, clock)
	require.NoError(t, err)

	authority := weavetest.NewKey()
	var accounts []cash.GenesisAccount
	for addr, amount := range balances {
		accounts = append(accounts, cash.GenesisAccount{
			Address: payday.Address(addr),
			Coins:   coin.Coins{coin.NewCoinp(amount, "IOV")},
		})
	}
	state := map[string]interface{}{
		"cash": accounts,
		"conf": map[string]interface{}{
			"rewards": map[string]interface{}{
				"owner":          authority.PublicKey().Address(),
				"token_ticker":   "IOV",
				"max_batch_size": 2,
			},
		},
		"rewards": map[string]interface{}{"last_distribution_at": payday.AsUnixTime(start)},
	}
	raw, err := json.Marshal(state)
	require.NoError(t, err)
	var opts payday.Options
	require.NoError(t, json.Unmarshal(raw, &opts))
	init := app.ChainInitializers(cash.Initializer{}, &rewards.Initializer{})
	require.NoError(t, engine.InitChain(&app.Genesis{ChainID: "driver-test", AppState: opts}, init))

	clock.Advance(time.Duration(rewards.DefaultDistributionInterval) * time.Second)
	return &testChain{engine: engine, clock: clock, authority: authority, close: kv.Close}
}

func (c *testChain) balance(t *testing.T, addr payday.Address) uint64 {
	t.Helper()
	var amount uint64
	require.NoError(t, c.engine.View(func(db payday.ReadOnlyKVStore) error {
		coins, err := cash.NewController(cash.NewBucket()).Balance(db, addr)
		amount = coins.Balance("IOV")
		return err
	}))
	return amount
}

func TestDriverRun(t *testing.T) {
	a, b, c, d := weavetest.RandomAddr(), weavetest.RandomAddr(), weavetest.RandomAddr(), weavetest.RandomAddr()
	chain := newTestChain(t, map[string]uint64{
		string(a):                      1500,
		string(b):                      500,
		string(c):                      3500,
		string(d):                      2000,
		string(rewards.VaultAddress()): 1000,
	})
	defer chain.close()

	driver := NewDriver(chain.engine, chain.authority).WithBatchSize(2).WithWorkers(3)
	report, err := driver.Run(context.Background(), []payday.Address{a, b, c, a, d})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), report.Cycle)
	assert.Equal(t, uint64(1000), report.Pool)
	assert.Equal(t, 3, report.Paid)
	assert.Equal(t, 1, report.Ineligible)
	assert.Equal(t, 0, report.Skipped)
	assert.Len(t, report.Results, 4)

	// 1500/7000, 3500/7000 and 2000/7000 of 1000.
	assert.Equal(t, uint64(1500+214), chain.balance(t, a))
	assert.Equal(t, uint64(3500+500), chain.balance(t, c))
	assert.Equal(t, uint64(2000+285), chain.balance(t, d))
	assert.Equal(t, uint64(999), report.Total)
	assert.Equal(t, uint64(1), report.Dust)
	assert.Equal(t, uint64(1), chain.balance(t, rewards.VaultAddress()))
}

func TestDriverResumePayout(t *testing.T) {
	a, b := weavetest.RandomAddr(), weavetest.RandomAddr()
	chain := newTestChain(t, map[string]uint64{
		string(a):                      1000,
		string(b):                      3000,
		string(rewards.VaultAddress()): 100,
	})
	defer chain.close()

	ctx := context.Background()
	driver := NewDriver(chain.engine, chain.authority)
	require.NoError(t, driver.Start(ctx))
	require.NoError(t, driver.Accumulate(ctx, []payday.Address{a, b}))

	report, err := driver.Payout(ctx, []payday.Address{a})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Paid)
	assert.Equal(t, uint64(25), report.Total)

	report, err = driver.Payout(ctx, []payday.Address{a, b})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Paid)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, uint64(75), report.Total)

	// A holder that was never counted and holds too little is reported.
	late := weavetest.RandomAddr()
	report, err = driver.Payout(ctx, []payday.Address{late})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Ineligible)

	require.NoError(t, driver.End(ctx))
}

// failingEngine fails every payout with an unexpected error.
type failingEngine struct {
	Engine
}

func (e failingEngine) Deliver(ctx context.Context, tx payday.Tx) (*payday.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if _, ok := msg.(*rewards.PayoutMsg); ok {
		return nil, errors.ErrDatabase
	}
	return e.Engine.Deliver(ctx, tx)
}

func TestDriverStopsOnUnexpectedError(t *testing.T) {
	a, b := weavetest.RandomAddr(), weavetest.RandomAddr()
	chain := newTestChain(t, map[string]uint64{
		string(a): 1000,
		string(b): 3000,
	})
	defer chain.close()

	driver := NewDriver(failingEngine{chain.engine}, chain.authority)
	_, err := driver.Run(context.Background(), []payday.Address{a, b})
	assert.True(t, errors.ErrDatabase.Is(err))

	// The cycle stays open for another attempt.
	var state rewards.State
	require.NoError(t, chain.engine.View(func(db payday.ReadOnlyKVStore) error {
		dist, err := rewards.NewDistributionBucket().Current(db)
		if err == nil {
			state = dist.State
		}
		return err
	}))
	assert.Equal(t, rewards.State_Active, state)
}

func TestDriverRequiresAuthority(t *testing.T) {
	chain := newTestChain(t, nil)
	defer chain.close()

	driver := NewDriver(chain.engine, weavetest.NewKey())
	_, err := driver.Run(context.Background(), nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestBatches(t *testing.T) {
	addrs := []payday.Address{weavetest.RandomAddr(), weavetest.RandomAddr(), weavetest.RandomAddr()}

	cases := map[string]struct {
		size int
		want []int
	}{
		"exact":     {size: 3, want: []int{3}},
		"remainder": {size: 2, want: []int{2, 1}},
		"one each":  {size: 1, want: []int{1, 1, 1}},
		"invalid":   {size: 0, want: []int{1, 1, 1}},
		"larger":    {size: 10, want: []int{3}},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got []int
			for _, b := range Batches(addrs, tc.size) {
				got = append(got, len(b))
			}
			assert.Equal(t, tc.want, got)
		})
	}
	assert.Empty(t, Batches(nil, 5))
}
