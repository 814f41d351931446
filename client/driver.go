package client

import (
	"context"
	"sync"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/app"
	"github.com/iov-one/payday/crypto"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/orm"
	"github.com/iov-one/payday/x/rewards"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/sync/errgroup"
)

// Engine processes transactions. It is implemented by app.Engine.
type Engine interface {
	ChainID() string
	Deliver(ctx context.Context, tx payday.Tx) (*payday.DeliverResult, error)
}

var _ Engine = (*app.Engine)(nil)

// DefaultWorkers is the number of payouts submitted at the same time.
const DefaultWorkers = 8

// Driver runs distribution cycles.
type Driver struct {
	engine    Engine
	authority crypto.Signer
	batchSize int
	workers   int
	logger    log.Logger
}

// NewDriver returns a driver submitting operations signed by the
// distribution authority.
func NewDriver(engine Engine, authority crypto.Signer) *Driver {
	return &Driver{
		engine:    engine,
		authority: authority,
		batchSize: rewards.DefaultMaxBatchSize,
		workers:   DefaultWorkers,
		logger:    log.NewNopLogger(),
	}
}

// WithBatchSize sets the number of holders sent in a single accumulate
// operation. It must not exceed the configured maximum batch size.
func (d *Driver) WithBatchSize(n int) *Driver {
	if n > 0 {
		d.batchSize = n
	}
	return d
}

// WithWorkers sets the number of concurrently submitted payouts.
func (d *Driver) WithWorkers(n int) *Driver {
	if n > 0 {
		d.workers = n
	}
	return d
}

// WithLogger sets the logger.
func (d *Driver) WithLogger(logger log.Logger) *Driver {
	d.logger = logger
	return d
}

// Run executes a full cycle for the given holders and ends it.
func (d *Driver) Run(ctx context.Context, holders []payday.Address) (*Report, error) {
	if err := d.Start(ctx); err != nil {
		return nil, err
	}
	if err := d.Accumulate(ctx, holders); err != nil {
		return nil, err
	}
	dist, err := d.Finalize(ctx)
	if err != nil {
		return nil, err
	}
	report, err := d.Payout(ctx, holders)
	report.Cycle = dist.Cycle
	report.Pool = dist.Pool
	if err != nil {
		return report, err
	}
	report.Dust = dist.Pool - report.Total
	if err := d.End(ctx); err != nil {
		return report, err
	}
	return report, nil
}

// Start opens a new cycle.
func (d *Driver) Start(ctx context.Context) error {
	res, err := d.signed(ctx, &rewards.StartCycleMsg{})
	if err != nil {
		return errors.Wrap(err, "start")
	}
	d.logger.Info("Cycle started", "log", res.Log)
	return nil
}

// Accumulate counts the holders in batches.
func (d *Driver) Accumulate(ctx context.Context, holders []payday.Address) error {
	for i, batch := range Batches(unique(holders), d.batchSize) {
		res, err := d.signed(ctx, &rewards.AccumulateMsg{Holders: batch})
		if err != nil {
			return errors.Wrapf(err, "accumulate batch %d", i)
		}
		d.logger.Debug("Batch accumulated", "batch", i, "log", res.Log)
	}
	return nil
}

// Finalize seals the total and returns the sealed distribution state.
func (d *Driver) Finalize(ctx context.Context) (*rewards.Distribution, error) {
	res, err := d.signed(ctx, &rewards.FinalizeMsg{})
	if err != nil {
		return nil, errors.Wrap(err, "finalize")
	}
	var dist rewards.Distribution
	if err := orm.Unmarshal(res.Data, &dist); err != nil {
		return nil, errors.Wrap(err, "finalize result")
	}
	d.logger.Info("Cycle sealed", "total", dist.TotalEligible, "pool", dist.Pool)
	return &dist, nil
}

// Payout pays all holders. Holders that are not eligible or were paid
// already are reported, not treated as a failure. Any other error stops
// the payouts.
func (d *Driver) Payout(ctx context.Context, holders []payday.Address) (*Report, error) {
	var (
		mu     sync.Mutex
		report Report
	)
	queue := make(chan payday.Address)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(queue)
		for _, h := range unique(holders) {
			select {
			case queue <- h:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < d.workers; i++ {
		g.Go(func() error {
			for holder := range queue {
				result, err := d.payout(ctx, holder)
				if err != nil {
					return errors.Wrapf(err, "payout %s", holder)
				}
				mu.Lock()
				report.add(result)
				mu.Unlock()
			}
			return nil
		})
	}

	err := g.Wait()
	report.sort()
	d.logger.Info("Payouts submitted",
		"paid", report.Paid,
		"skipped", report.Skipped,
		"ineligible", report.Ineligible,
		"uncounted", report.Uncounted,
		"total", report.Total)
	return &report, err
}

func (d *Driver) payout(ctx context.Context, holder payday.Address) (Result, error) {
	res, err := d.engine.Deliver(ctx, app.NewTx(&rewards.PayoutMsg{Holder: holder}))
	switch {
	case err == nil:
		var h rewards.Holding
		if err := orm.Unmarshal(res.Data, &h); err != nil {
			return Result{}, errors.Wrap(err, "payout result")
		}
		return Result{Holder: holder, Status: StatusPaid, Reward: h.Reward}, nil
	case errors.ErrDuplicate.Is(err):
		return Result{Holder: holder, Status: StatusSkipped}, nil
	case rewards.ErrInsufficientBalance.Is(err):
		return Result{Holder: holder, Status: StatusIneligible}, nil
	case errors.ErrNotFound.Is(err):
		// Eligible now, but below the threshold when counted.
		return Result{Holder: holder, Status: StatusUncounted}, nil
	default:
		return Result{}, err
	}
}

// End closes the cycle.
func (d *Driver) End(ctx context.Context) error {
	res, err := d.signed(ctx, &rewards.EndCycleMsg{})
	if err != nil {
		return errors.Wrap(err, "end")
	}
	d.logger.Info("Cycle ended", "log", res.Log)
	return nil
}

func (d *Driver) signed(ctx context.Context, msg payday.Msg) (*payday.DeliverResult, error) {
	if d.authority == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no authority key")
	}
	tx := app.NewTx(msg)
	if err := tx.Sign(d.engine.ChainID(), d.authority); err != nil {
		return nil, err
	}
	return d.engine.Deliver(ctx, tx)
}

// Batches splits holders into chunks of at most size elements.
func Batches(holders []payday.Address, size int) [][]payday.Address {
	if size <= 0 {
		size = 1
	}
	var batches [][]payday.Address
	for len(holders) > 0 {
		n := size
		if n > len(holders) {
			n = len(holders)
		}
		batches = append(batches, holders[:n])
		holders = holders[n:]
	}
	return batches
}

func unique(addrs []payday.Address) []payday.Address {
	seen := make(map[string]struct{}, len(addrs))
	out := make([]payday.Address, 0, len(addrs))
	for _, a := range addrs {
		if _, ok := seen[string(a)]; ok {
			continue
		}
		seen[string(a)] = struct{}{}
		out = append(out, a)
	}
	return out
}
