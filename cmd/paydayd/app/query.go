package app

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/app"
	"github.com/iov-one/payday/coin"
	"github.com/iov-one/payday/x/cash"
	"github.com/iov-one/payday/x/rewards"
)

// QueryStatus returns the configuration and the state of the distribution.
func QueryStatus(e *app.Engine) (*rewards.Status, error) {
	var status *rewards.Status
	err := e.View(func(db payday.ReadOnlyKVStore) error {
		s, err := rewards.QueryStatus(db, cash.NewController(cash.NewBucket()))
		status = s
		return err
	})
	return status, err
}

// QueryBalance returns all coins owned by the address.
func QueryBalance(e *app.Engine, addr payday.Address) (coin.Coins, error) {
	var coins coin.Coins
	err := e.View(func(db payday.ReadOnlyKVStore) error {
		c, err := cash.NewController(cash.NewBucket()).Balance(db, addr)
		coins = c
		return err
	})
	return coins, err
}

// QueryHolding returns the holding record of a holder counted in the cycle.
func QueryHolding(e *app.Engine, cycle uint64, holder payday.Address) (*rewards.Holding, error) {
	var holding *rewards.Holding
	err := e.View(func(db payday.ReadOnlyKVStore) error {
		h, err := rewards.QueryHolding(db, cycle, holder)
		holding = h
		return err
	})
	return holding, err
}
