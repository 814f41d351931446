package rewards

import (
	"fmt"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/coin"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/gconf"
	"github.com/iov-one/payday/orm"
	"github.com/iov-one/payday/x"
)

// CashController reads holder balances and moves rewards out of the vault.
// cash.BaseController implements it.
type CashController interface {
	Balance(payday.ReadOnlyKVStore, payday.Address) (coin.Coins, error)
	MoveCoins(payday.KVStore, payday.Address, payday.Address, coin.Coin) error
}

// RegisterRoutes registers handlers for rewards message processing.
func RegisterRoutes(r payday.Registry, auth x.Authenticator, ctrl CashController) {
	cycles := NewDistributionBucket()
	holdings := NewHoldingBucket()

	r.Handle(&StartCycleMsg{}, &startCycleHandler{auth: auth, cycles: cycles, seq: cycleSequence})
	r.Handle(&AccumulateMsg{}, &accumulateHandler{auth: auth, cycles: cycles, holdings: holdings, ctrl: ctrl})
	r.Handle(&FinalizeMsg{}, &finalizeHandler{auth: auth, cycles: cycles, vault: newVault(ctrl)})
	r.Handle(&PayoutMsg{}, &payoutHandler{cycles: cycles, holdings: holdings, ctrl: ctrl, vault: newVault(ctrl)})
	r.Handle(&EndCycleMsg{}, &endCycleHandler{auth: auth, cycles: cycles})
	r.Handle(&UpdateConfigurationMsg{}, &updateConfigurationHandler{
		cycles: cycles,
		update: gconf.NewUpdateHandler(confPkg, &Configuration{}, auth),
	})
}

// loadCycle returns the configuration and the distribution state after
// checking that the operation is allowed. If auth is not nil, the
// configured authority must have signed.
func loadCycle(ctx payday.Context, db payday.ReadOnlyKVStore, auth x.Authenticator, cycles *DistributionBucket, op operation) (*Configuration, *Distribution, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	if auth != nil {
		if err := x.RequireAddress(ctx, auth, conf.Owner, "authority"); err != nil {
			return nil, nil, err
		}
	}
	dist, err := cycles.Current(db)
	if err != nil {
		return nil, nil, err
	}
	next, err := transit(dist.State, op)
	if err != nil {
		return nil, nil, err
	}
	dist.State = next
	return conf, dist, nil
}

type startCycleHandler struct {
	auth   x.Authenticator
	cycles *DistributionBucket
	seq    orm.Sequence
}

var _ payday.Handler = (*startCycleHandler)(nil)

func (h *startCycleHandler) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &payday.CheckResult{}, nil
}

func (h *startCycleHandler) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.DeliverResult, error) {
	dist, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	cycle, err := h.seq.Next(db)
	if err != nil {
		return nil, errors.Wrap(err, "cycle number")
	}
	// Ttotal is zeroed only here.
	dist.Cycle = cycle
	dist.TotalEligible = 0
	dist.Sealed = false
	dist.Pool = 0
	dist.CountedHolders = 0
	dist.PaidHolders = 0
	dist.PaidTotal = 0
	if err := h.cycles.Save(db, dist); err != nil {
		return nil, errors.Wrap(err, "cannot save")
	}
	return distributionResult(dist, fmt.Sprintf("cycle %d started", dist.Cycle))
}

// distributionResult returns the serialized distribution state as the
// result data, so that clients and metrics read the state that was saved.
func distributionResult(dist *Distribution, log string) (*payday.DeliverResult, error) {
	raw, err := orm.Marshal(dist)
	if err != nil {
		return nil, err
	}
	return &payday.DeliverResult{Log: log, Data: raw}, nil
}

func (h *startCycleHandler) validate(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*Distribution, error) {
	var msg StartCycleMsg
	if err := payday.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, dist, err := loadCycle(ctx, db, h.auth, h.cycles, opStart)
	if err != nil {
		return nil, err
	}
	now, err := payday.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	notBefore, err := nextStartAt(dist.LastDistributionAt, conf.DistributionInterval)
	if err != nil {
		return nil, err
	}
	if payday.AsUnixTime(now) < notBefore {
		return nil, errors.Wrapf(ErrTooEarly, "next cycle not before %s", notBefore)
	}
	return dist, nil
}

type accumulateHandler struct {
	auth     x.Authenticator
	cycles   *DistributionBucket
	holdings *HoldingBucket
	ctrl     CashController
}

var _ payday.Handler = (*accumulateHandler)(nil)

func (h *accumulateHandler) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &payday.CheckResult{}, nil
}

// Deliver counts the balances of all holders that were not counted yet in
// this cycle. Either all given holders are processed or none.
func (h *accumulateHandler) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.DeliverResult, error) {
	msg, conf, dist, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	var (
		fresh    []*Holding
		balances []uint64
		seen     = make(map[string]struct{}, len(msg.Holders))
	)
	for _, holder := range msg.Holders {
		if _, ok := seen[string(holder)]; ok {
			continue
		}
		seen[string(holder)] = struct{}{}

		switch err := h.holdings.Has(db, holdingKey(dist.Cycle, holder)); {
		case err == nil:
			// Already counted in this cycle.
			continue
		case !errors.ErrNotFound.Is(err):
			return nil, errors.Wrap(err, "cannot check holding")
		}

		coins, err := h.ctrl.Balance(db, holder)
		if err != nil {
			return nil, errors.Wrapf(err, "balance of %s", holder)
		}
		balance := coins.Balance(conf.TokenTicker)
		if balance < conf.MinEligibleBalance {
			continue
		}
		fresh = append(fresh, &Holding{Holder: holder, Cycle: dist.Cycle, Balance: balance})
		balances = append(balances, balance)
	}

	total, counted, err := Accumulate(dist.TotalEligible, conf.MinEligibleBalance, balances...)
	if err != nil {
		return nil, err
	}
	for _, holding := range fresh {
		if err := h.holdings.Save(db, holding); err != nil {
			return nil, errors.Wrap(err, "cannot save holding")
		}
	}
	dist.TotalEligible = total
	dist.CountedHolders += uint64(counted)
	if err := h.cycles.Save(db, dist); err != nil {
		return nil, errors.Wrap(err, "cannot save")
	}

	return distributionResult(dist, fmt.Sprintf("counted %d of %d holders", counted, len(msg.Holders)))
}

func (h *accumulateHandler) validate(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*AccumulateMsg, *Configuration, *Distribution, error) {
	var msg AccumulateMsg
	if err := payday.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	conf, dist, err := loadCycle(ctx, db, h.auth, h.cycles, opAccumulate)
	if err != nil {
		return nil, nil, nil, err
	}
	if dist.Sealed {
		return nil, nil, nil, errors.Wrap(errors.ErrState, "total sealed")
	}
	if len(msg.Holders) > int(conf.MaxBatchSize) {
		return nil, nil, nil, errors.Wrapf(errors.ErrInput, "batch of %d holders exceeds the limit of %d", len(msg.Holders), conf.MaxBatchSize)
	}
	return &msg, conf, dist, nil
}

type finalizeHandler struct {
	auth   x.Authenticator
	cycles *DistributionBucket
	vault  vault
}

var _ payday.Handler = (*finalizeHandler)(nil)

func (h *finalizeHandler) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &payday.CheckResult{}, nil
}

func (h *finalizeHandler) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.DeliverResult, error) {
	conf, dist, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := seal(db, h.vault, conf, dist); err != nil {
		return nil, err
	}
	if err := h.cycles.Save(db, dist); err != nil {
		return nil, errors.Wrap(err, "cannot save")
	}
	return distributionResult(dist, fmt.Sprintf("cycle %d sealed: total %d, pool %d", dist.Cycle, dist.TotalEligible, dist.Pool))
}

func (h *finalizeHandler) validate(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*Configuration, *Distribution, error) {
	var msg FinalizeMsg
	if err := payday.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, dist, err := loadCycle(ctx, db, h.auth, h.cycles, opFinalize)
	if err != nil {
		return nil, nil, err
	}
	if dist.Sealed {
		return nil, nil, errors.Wrap(errors.ErrState, "already sealed")
	}
	return conf, dist, nil
}

// seal closes the accumulation of the cycle and takes a snapshot of the
// reward pool.
func seal(db payday.ReadOnlyKVStore, v vault, conf *Configuration, dist *Distribution) error {
	pool, err := v.balance(db, conf.PayoutTicker())
	if err != nil {
		return err
	}
	dist.Sealed = true
	dist.Pool = pool
	return nil
}

type payoutHandler struct {
	cycles   *DistributionBucket
	holdings *HoldingBucket
	ctrl     CashController
	vault    vault
}

var _ payday.Handler = (*payoutHandler)(nil)

func (h *payoutHandler) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &payday.CheckResult{}, nil
}

// Deliver transfers the reward of a single holder. A zero reward is recorded
// as paid without any transfer.
func (h *payoutHandler) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.DeliverResult, error) {
	conf, dist, holding, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if !dist.Sealed {
		if err := seal(db, h.vault, conf, dist); err != nil {
			return nil, err
		}
	}

	reward, err := Reward(holding.Balance, dist.TotalEligible, dist.Pool)
	if err != nil {
		return nil, err
	}
	if reward > dist.Pool-dist.PaidTotal {
		return nil, errors.Wrapf(ErrCalculation, "reward %d exceeds the remaining pool", reward)
	}
	if reward > 0 {
		if err := h.vault.transfer(db, holding.Holder, coin.NewCoin(reward, conf.PayoutTicker())); err != nil {
			return nil, err
		}
	}

	holding.Paid = true
	holding.Reward = reward
	if err := h.holdings.Save(db, holding); err != nil {
		return nil, errors.Wrap(err, "cannot save holding")
	}
	dist.PaidHolders++
	dist.PaidTotal += reward
	if err := h.cycles.Save(db, dist); err != nil {
		return nil, errors.Wrap(err, "cannot save")
	}

	raw, err := orm.Marshal(holding)
	if err != nil {
		return nil, err
	}
	return &payday.DeliverResult{
		Log:  fmt.Sprintf("paid %d %s to %s", reward, conf.PayoutTicker(), holding.Holder),
		Data: raw,
	}, nil
}

func (h *payoutHandler) validate(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*Configuration, *Distribution, *Holding, error) {
	var msg PayoutMsg
	if err := payday.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	// Payouts are permissionless.
	conf, dist, err := loadCycle(ctx, db, nil, h.cycles, opPayout)
	if err != nil {
		return nil, nil, nil, err
	}

	holding, err := h.holdings.Get(db, dist.Cycle, msg.Holder)
	switch {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		coins, err := h.ctrl.Balance(db, msg.Holder)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "holder balance")
		}
		if coins.Balance(conf.TokenTicker) < conf.MinEligibleBalance {
			return nil, nil, nil, errors.Wrapf(ErrInsufficientBalance, "minimum %d required", conf.MinEligibleBalance)
		}
		return nil, nil, nil, errors.Wrapf(errors.ErrNotFound, "holder %s not counted in cycle %d", msg.Holder, dist.Cycle)
	default:
		return nil, nil, nil, errors.Wrap(err, "cannot load holding")
	}
	if holding.Paid {
		return nil, nil, nil, errors.Wrapf(errors.ErrDuplicate, "holder %s already paid in cycle %d", msg.Holder, dist.Cycle)
	}
	return conf, dist, holding, nil
}

type endCycleHandler struct {
	auth   x.Authenticator
	cycles *DistributionBucket
}

var _ payday.Handler = (*endCycleHandler)(nil)

func (h *endCycleHandler) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &payday.CheckResult{}, nil
}

// Deliver closes the cycle. It does not verify that every holder was paid.
func (h *endCycleHandler) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.DeliverResult, error) {
	dist, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := payday.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	dist.LastDistributionAt = payday.AsUnixTime(now)
	dist.Sealed = false
	if err := h.cycles.Save(db, dist); err != nil {
		return nil, errors.Wrap(err, "cannot save")
	}

	return distributionResult(dist, fmt.Sprintf("cycle %d ended: paid %d to %d of %d holders", dist.Cycle, dist.PaidTotal, dist.PaidHolders, dist.CountedHolders))
}

func (h *endCycleHandler) validate(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*Distribution, error) {
	var msg EndCycleMsg
	if err := payday.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	_, dist, err := loadCycle(ctx, db, h.auth, h.cycles, opEnd)
	return dist, err
}

// updateConfigurationHandler allows the authority to change the policy
// between cycles.
type updateConfigurationHandler struct {
	cycles *DistributionBucket
	update *gconf.UpdateHandler
}

var _ payday.Handler = (*updateConfigurationHandler)(nil)

func (h *updateConfigurationHandler) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.CheckResult, error) {
	if err := h.idle(db); err != nil {
		return nil, err
	}
	return h.update.Check(ctx, db, tx)
}

func (h *updateConfigurationHandler) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.DeliverResult, error) {
	if err := h.idle(db); err != nil {
		return nil, err
	}
	return h.update.Deliver(ctx, db, tx)
}

func (h *updateConfigurationHandler) idle(db payday.ReadOnlyKVStore) error {
	dist, err := h.cycles.Current(db)
	if err != nil {
		return err
	}
	_, err = transit(dist.State, opConfigure)
	return err
}
