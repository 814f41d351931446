package app

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
	"github.com/iov-one/payday/weavetest"
	"github.com/iov-one/payday/x/cash"
	"github.com/iov-one/payday/x/rewards"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chainID = "payday-test"

type fixture struct {
	t      *testing.T
	engine *app.Engine
	clock  clockwork.FakeClock
	owner  *crypto.PrivateKey
	close  func()
}

func newFixture(t *testing.T, accounts ...cash.GenesisAccount) *fixture {
	t.Helper()

	start := time.Date(2019, time.May, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	engine, kv, err := Application("", clock)
	require.NoError(t, err)

	owner := weavetest.NewKey()
	state := map[string]interface{}{
		"cash": accounts,
		"conf": map[string]interface{}{
			"rewards": map[string]interface{}{
				"owner":        owner.PublicKey().Address(),
				"token_ticker": "IOV",
			},
		},
		"rewards": map[string]interface{}{
			"last_distribution_at": payday.AsUnixTime(start),
		},
	}
	raw, err := json.Marshal(state)
	require.NoError(t, err)
	var opts payday.Options
	require.NoError(t, json.Unmarshal(raw, &opts))

	require.NoError(t, engine.InitChain(&app.Genesis{ChainID: chainID, AppState: opts}, Initializers()))
	return &fixture{t: t, engine: engine, clock: clock, owner: owner, close: kv.Close}
}

func (f *fixture) deliver(msg payday.Msg, keys ...*crypto.PrivateKey) (*payday.DeliverResult, error) {
	tx := app.NewTx(msg)
	for _, k := range keys {
		require.NoError(f.t, tx.Sign(chainID, k))
	}
	return f.engine.Deliver(context.Background(), tx)
}

func (f *fixture) balance(addr payday.Address) uint64 {
	coins, err := QueryBalance(f.engine, addr)
	require.NoError(f.t, err)
	return coins.Balance("IOV")
}

func TestRewardCycle(t *testing.T) {
	alice := weavetest.NewKey()
	bob := weavetest.RandomAddr()
	charlie := weavetest.RandomAddr()

	f := newFixture(t,
		cash.GenesisAccount{Address: alice.PublicKey().Address(), Coins: coin.Coins{coin.NewCoinp(2500, "IOV")}},
		cash.GenesisAccount{Address: bob, Coins: coin.Coins{coin.NewCoinp(500, "IOV")}},
		cash.GenesisAccount{Address: charlie, Coins: coin.Coins{coin.NewCoinp(3500, "IOV")}},
	)
	defer f.close()
	aliceAddr := alice.PublicKey().Address()

	// Alice funds the reward pool.
	_, err := f.deliver(&cash.SendMsg{
		Source:      aliceAddr,
		Destination: rewards.VaultAddress(),
		Amount:      coin.NewCoinp(1000, "IOV"),
	}, alice)
	require.NoError(t, err)

	_, err = f.deliver(&rewards.StartCycleMsg{}, f.owner)
	assert.True(t, rewards.ErrTooEarly.Is(err))

	f.clock.Advance(10 * time.Minute)
	_, err = f.deliver(&rewards.StartCycleMsg{}, alice)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	_, err = f.deliver(&rewards.StartCycleMsg{})
	assert.True(t, errors.ErrUnauthorized.Is(err))
	_, err = f.deliver(&rewards.StartCycleMsg{}, f.owner)
	require.NoError(t, err)

	_, err = f.deliver(&rewards.AccumulateMsg{Holders: []payday.Address{aliceAddr, bob, charlie}}, f.owner)
	require.NoError(t, err)
	_, err = f.deliver(&rewards.FinalizeMsg{}, f.owner)
	require.NoError(t, err)

	status, err := QueryStatus(f.engine)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), status.Distribution.TotalEligible)
	assert.Equal(t, uint64(1000), status.Distribution.Pool)

	// Payouts do not need a signature.
	_, err = f.deliver(&rewards.PayoutMsg{Holder: aliceAddr})
	require.NoError(t, err)
	_, err = f.deliver(&rewards.PayoutMsg{Holder: bob})
	assert.True(t, rewards.ErrInsufficientBalance.Is(err))
	_, err = f.deliver(&rewards.PayoutMsg{Holder: charlie})
	require.NoError(t, err)

	assert.Equal(t, uint64(1800), f.balance(aliceAddr))
	assert.Equal(t, uint64(500), f.balance(bob))
	assert.Equal(t, uint64(4200), f.balance(charlie))
	assert.Equal(t, uint64(0), f.balance(rewards.VaultAddress()))

	h, err := QueryHolding(f.engine, 1, charlie)
	require.NoError(t, err)
	assert.Equal(t, uint64(700), h.Reward)

	_, err = f.deliver(&rewards.EndCycleMsg{}, f.owner)
	require.NoError(t, err)
	status, err = QueryStatus(f.engine)
	require.NoError(t, err)
	assert.Equal(t, "STATE_IDLE", status.State)
}

func TestVaultCannotBeSpentBySend(t *testing.T) {
	alice := weavetest.NewKey()
	f := newFixture(t,
		cash.GenesisAccount{Address: rewards.VaultAddress(), Coins: coin.Coins{coin.NewCoinp(100, "IOV")}},
	)
	defer f.close()

	_, err := f.deliver(&cash.SendMsg{
		Source:      rewards.VaultAddress(),
		Destination: alice.PublicKey().Address(),
		Amount:      coin.NewCoinp(100, "IOV"),
	}, alice)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, uint64(100), f.balance(rewards.VaultAddress()))
}

func TestUnknownMessage(t *testing.T) {
	f := newFixture(t)
	defer f.close()
	_, err := f.engine.Deliver(context.Background(), &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "unknown/msg"}})
	assert.True(t, errors.ErrNotFound.Is(err))
}
