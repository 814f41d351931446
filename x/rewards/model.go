package rewards

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/coin"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/gconf"
	"github.com/iov-one/payday/orm"
)

const (
	// DefaultMinEligibleBalance is the threshold used when none is
	// configured.
	DefaultMinEligibleBalance = 1000

	// DefaultDistributionInterval is the number of seconds that must
	// pass between two cycles when none is configured.
	DefaultDistributionInterval = 600

	// DefaultMaxBatchSize is the accumulate batch cap used when none is
	// configured.
	DefaultMaxBatchSize = 64

	// maxBatchSizeLimit is the hard cap of the configurable batch size.
	maxBatchSizeLimit = 1024

	// MaxDistributionInterval is the longest configurable interval, ten
	// years in seconds.
	MaxDistributionInterval = 10 * 365 * 24 * 60 * 60
)

// confPkg is the name under which the configuration is stored.
const confPkg = "rewards"

var _ gconf.OwnedConfig = (*Configuration)(nil)

// GetOwner returns the distribution authority.
func (c *Configuration) GetOwner() payday.Address {
	return c.Owner
}

// Validate ensures the configuration is complete.
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if !coin.IsCC(c.TokenTicker) {
		errs = errors.AppendField(errs, "TokenTicker", errors.ErrCurrency.Newf("invalid ticker %q", c.TokenTicker))
	}
	if c.RewardTicker != "" && !coin.IsCC(c.RewardTicker) {
		errs = errors.AppendField(errs, "RewardTicker", errors.ErrCurrency.Newf("invalid ticker %q", c.RewardTicker))
	}
	if c.DistributionInterval < 0 || c.DistributionInterval > MaxDistributionInterval {
		errs = errors.AppendField(errs, "DistributionInterval", errors.ErrInput.Newf("must be between 0 and %d", MaxDistributionInterval))
	}
	if c.MaxBatchSize == 0 || c.MaxBatchSize > maxBatchSizeLimit {
		errs = errors.AppendField(errs, "MaxBatchSize", errors.ErrInput.Newf("must be between 1 and %d", maxBatchSizeLimit))
	}
	return errs
}

// PayoutTicker returns the denomination of the rewards. Unless configured
// otherwise, rewards are paid in the held token.
func (c *Configuration) PayoutTicker() string {
	if c.RewardTicker == "" {
		return c.TokenTicker
	}
	return c.RewardTicker
}

// DefaultConfiguration returns a configuration with all optional values set
// to their defaults. Owner and tickers must still be provided.
func DefaultConfiguration() Configuration {
	return Configuration{
		MinEligibleBalance:   DefaultMinEligibleBalance,
		DistributionInterval: DefaultDistributionInterval,
		MaxBatchSize:         DefaultMaxBatchSize,
	}
}

// nextStartAt returns the earliest time a cycle can start after a cycle
// closed at last.
func nextStartAt(last payday.UnixTime, interval int64) (payday.UnixTime, error) {
	if interval < 0 {
		return 0, errors.Wrapf(ErrCalculation, "negative interval %d", interval)
	}
	next, err := last.AddSeconds(interval)
	if err != nil {
		return 0, errors.Wrap(ErrCalculation, err.Error())
	}
	return next, nil
}

// LoadConfiguration returns the current configuration.
func LoadConfiguration(db payday.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

var _ orm.Model = (*Distribution)(nil)

// Validate ensures the distribution state is consistent.
func (d *Distribution) Validate() error {
	var errs error
	if _, ok := transitions[d.State]; !ok {
		errs = errors.AppendField(errs, "State", errors.ErrState.Newf("unknown state %s", d.State))
	}
	errs = errors.AppendField(errs, "LastDistributionAt", d.LastDistributionAt.Validate())
	if d.Sealed && d.State != State_Active {
		errs = errors.AppendField(errs, "Sealed", errors.ErrState.New("only an active cycle can be sealed"))
	}
	if d.PaidTotal > d.Pool {
		errs = errors.AppendField(errs, "PaidTotal", errors.ErrState.New("paid more than the pool"))
	}
	if d.PaidHolders > d.CountedHolders {
		errs = errors.AppendField(errs, "PaidHolders", errors.ErrState.New("paid more holders than counted"))
	}
	return errs
}

var _ orm.Model = (*Holding)(nil)

// Validate ensures the holding record is consistent.
func (h *Holding) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Holder", h.Holder.Validate())
	if h.Cycle == 0 {
		errs = errors.AppendField(errs, "Cycle", errors.ErrEmpty.New("required"))
	}
	if !h.Paid && h.Reward != 0 {
		errs = errors.AppendField(errs, "Reward", errors.ErrState.New("reward of an unpaid holding"))
	}
	return errs
}

// distributionKey is the key of the distribution state singleton.
var distributionKey = []byte("current")

// DistributionBucket stores the distribution cycle state.
type DistributionBucket struct {
	orm.ModelBucket
}

// NewDistributionBucket returns a bucket for the distribution state.
func NewDistributionBucket() *DistributionBucket {
	return &DistributionBucket{
		ModelBucket: orm.NewModelBucket("distribution", &Distribution{}),
	}
}

// Current returns the distribution state.
func (b *DistributionBucket) Current(db payday.ReadOnlyKVStore) (*Distribution, error) {
	var d Distribution
	if err := b.One(db, distributionKey, &d); err != nil {
		return nil, errors.Wrap(err, "load distribution state")
	}
	return &d, nil
}

// Save writes the distribution state.
func (b *DistributionBucket) Save(db payday.KVStore, d *Distribution) error {
	return b.Put(db, distributionKey, d)
}

// HoldingBucket stores the balances counted in each cycle.
type HoldingBucket struct {
	orm.ModelBucket
}

// NewHoldingBucket returns a bucket for holding records.
func NewHoldingBucket() *HoldingBucket {
	return &HoldingBucket{
		ModelBucket: orm.NewModelBucket("holding", &Holding{}),
	}
}

// cycleSequence numbers the distribution cycles.
var cycleSequence = orm.NewSequence("distribution", "cycle")

// holdingKey returns the key of a holding record. The records of a cycle
// share the encoded cycle number as a prefix.
func holdingKey(cycle uint64, holder payday.Address) []byte {
	return append(orm.EncodeSequence(cycle), holder...)
}

// Get returns the holding of a holder in the given cycle. ErrNotFound is
// returned if the holder was not counted.
func (b *HoldingBucket) Get(db payday.ReadOnlyKVStore, cycle uint64, holder payday.Address) (*Holding, error) {
	var h Holding
	if err := b.One(db, holdingKey(cycle, holder), &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Save writes the holding record.
func (b *HoldingBucket) Save(db payday.KVStore, h *Holding) error {
	return b.Put(db, holdingKey(h.Cycle, h.Holder), h)
}
