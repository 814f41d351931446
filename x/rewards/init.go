package rewards

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ payday.Initializer = (*Initializer)(nil)

// FromGenesis stores the configuration found under conf.rewards, with the
// defaults applied for missing optional values, and the initial Idle state of
// the distribution. The rewards section can set last_distribution_at, the
// bootstrap time the first distribution interval is counted from.
func (*Initializer) FromGenesis(opts payday.Options, kv payday.KVStore) error {
	conf := DefaultConfiguration()
	if err := gconf.InitConfig(kv, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "cannot initialize configuration")
	}
	var state struct {
		LastDistributionAt payday.UnixTime `json:"last_distribution_at"`
	}
	if err := opts.ReadOptions("rewards", &state); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	dist := Distribution{
		State:              State_Idle,
		LastDistributionAt: state.LastDistributionAt,
	}
	if err := NewDistributionBucket().Save(kv, &dist); err != nil {
		return errors.Wrap(err, "cannot save distribution state")
	}
	return nil
}
