package cash

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/coin"
	"github.com/iov-one/payday/errors"
)

// Balancer is an interface to query the amount of coins.
type Balancer interface {
	Balance(payday.ReadOnlyKVStore, payday.Address) (coin.Coins, error)
}

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins transfers coins from src to dest. It fails with
	// ErrAmount if src does not hold enough.
	MoveCoins(payday.KVStore, payday.Address, payday.Address, coin.Coin) error
}

// CoinMinter is an interface to create new coins.
type CoinMinter interface {
	CoinMint(payday.KVStore, payday.Address, coin.Coin) error
}

// Controller is the functionality needed by cash.Handler and cash.Decorator.
// BaseController should work plenty fine, but you can add other logic if so
// desired
type Controller interface {
	Balancer
	CoinMover
	CoinMinter
}

// BaseController is a simple implementation of controller wallet must return
// something that supports AsSet
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a basic controller implementation
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by the given address. A missing wallet has
// an empty balance.
func (c BaseController) Balance(db payday.ReadOnlyKVStore, addr payday.Address) (coin.Coins, error) {
	set, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get wallet")
	}
	return coin.Coins(set.Coins), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db payday.KVStore, src, dest payday.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.GetOrCreate(db, src)
	if err != nil {
		return errors.Wrap(err, "cannot get sender wallet")
	}
	if !coin.Coins(sender.Coins).Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %s has %d", src, coin.Coins(sender.Coins).Balance(amount.Ticker))
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, sender); err != nil {
		return errors.Wrap(err, "cannot save sender wallet")
	}

	// Load the recipient after the sender was saved so that moving coins
	// to self is handled correctly.
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot get recipient wallet")
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, recipient); err != nil {
		return errors.Wrap(err, "cannot save recipient wallet")
	}
	return nil
}

// CoinMint attempts to add the given amount of coins to the destination
// address. Fails if it overflows the wallet.
func (c BaseController) CoinMint(db payday.KVStore, dest payday.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if amount.IsZero() {
		return nil
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "cannot get wallet")
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}
