package cash

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/coin"
	"github.com/iov-one/payday/errors"
)

// GenesisAccount is an entry of the "cash" genesis list, for example
//
//   {"address": "0102...", "coins": ["1000000 IOV"]}
type GenesisAccount struct {
	Address payday.Address `json:"address"`
	Coins   coin.Coins     `json:"coins"`
}

// Initializer creates the wallets listed in genesis.
type Initializer struct{}

var _ payday.Initializer = Initializer{}

func (Initializer) FromGenesis(opts payday.Options, db payday.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions(BucketName, &accounts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	wallets := NewBucket()
	for i, a := range accounts {
		err := a.Address.Validate()
		if err == nil {
			var coins coin.Coins
			if coins, err = coin.NormalizeCoins(a.Coins); err == nil {
				err = wallets.Save(db, &Set{Owner: a.Address, Coins: coins})
			}
		}
		if err != nil {
			return errors.Wrapf(err, "genesis account %d", i)
		}
	}
	return nil
}
