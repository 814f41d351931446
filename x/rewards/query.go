package rewards

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
)

// Status is a snapshot of the distribution.
type Status struct {
	Configuration *Configuration `json:"configuration"`
	Distribution  *Distribution  `json:"distribution"`
	// State is the human readable form of the distribution state.
	State string `json:"state"`
	// Vault is the address holding the reward pool.
	Vault payday.Address `json:"vault"`
	// VaultBalance is the current reward pool balance.
	VaultBalance uint64 `json:"vault_balance"`
	// NextStartAt is the earliest time the next cycle can start. It is
	// zero while a cycle is active.
	NextStartAt payday.UnixTime `json:"next_start_at,omitempty"`
}

// QueryStatus returns the configuration and the state of the distribution.
func QueryStatus(db payday.ReadOnlyKVStore, bank CashController) (*Status, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	dist, err := NewDistributionBucket().Current(db)
	if err != nil {
		return nil, err
	}
	coins, err := bank.Balance(db, VaultAddress())
	if err != nil {
		return nil, errors.Wrap(err, "vault balance")
	}
	s := Status{
		Configuration: conf,
		Distribution:  dist,
		State:         dist.State.String(),
		Vault:         VaultAddress(),
		VaultBalance:  coins.Balance(conf.PayoutTicker()),
	}
	if dist.State == State_Idle {
		next, err := nextStartAt(dist.LastDistributionAt, conf.DistributionInterval)
		if err != nil {
			return nil, err
		}
		s.NextStartAt = next
	}
	return &s, nil
}

// QueryHolding returns the holding record of a holder in the given cycle.
func QueryHolding(db payday.ReadOnlyKVStore, cycle uint64, holder payday.Address) (*Holding, error) {
	return NewHoldingBucket().Get(db, cycle, holder)
}
