package rewards

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/coin"
	"github.com/iov-one/payday/errors"
)

// vaultCondition is the keyless condition owning the reward pool. No private
// key exists for it, so nobody can sign on its behalf.
var vaultCondition = payday.NewCondition("rewards", "vault", []byte("vault"))

// VaultAddress returns the address that holds the reward pool. Anyone can
// fund the pool by sending coins to this address.
func VaultAddress() payday.Address {
	return vaultCondition.Address()
}

// vault is the capability to move funds out of the reward pool. It can be
// obtained only inside this package.
type vault struct {
	ctrl CashController
}

func newVault(ctrl CashController) vault {
	return vault{ctrl: ctrl}
}

// balance returns the pool balance of the given currency.
func (v vault) balance(db payday.ReadOnlyKVStore, ticker string) (uint64, error) {
	coins, err := v.ctrl.Balance(db, VaultAddress())
	if err != nil {
		return 0, errors.Wrap(err, "vault balance")
	}
	return coins.Balance(ticker), nil
}

// transfer moves the given amount from the pool to the holder. A ledger
// failure, for example insufficient funds, is returned unchanged.
func (v vault) transfer(db payday.KVStore, holder payday.Address, amount coin.Coin) error {
	return v.ctrl.MoveCoins(db, VaultAddress(), holder, amount)
}
