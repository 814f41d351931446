package cash

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/coin"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

var _ orm.Model = (*Set)(nil)

// Validate requires that all coins are sorted and positive.
func (s *Set) Validate() error {
	if err := s.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return coin.Coins(s.Coins).Validate()
}

// Add modifies the set to include the coin c.
func (s *Set) Add(c coin.Coin) error {
	cs, err := coin.Coins(s.Coins).Add(c)
	if err != nil {
		return err
	}
	s.Coins = cs
	return nil
}

// Subtract modifies the set to remove the coin c. ErrAmount is returned if
// the set does not hold enough.
func (s *Set) Subtract(c coin.Coin) error {
	cs, err := coin.Coins(s.Coins).Subtract(c)
	if err != nil {
		return err
	}
	s.Coins = cs
	return nil
}

// Bucket is a type-safe wrapper around orm.ModelBucket that stores a wallet
// under its owner address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Set{}),
	}
}

// GetOrCreate returns the wallet of the given address. A missing wallet is
// returned as an empty set.
func (b Bucket) GetOrCreate(db payday.ReadOnlyKVStore, addr payday.Address) (*Set, error) {
	var set Set
	switch err := b.One(db, addr, &set); {
	case err == nil:
		return &set, nil
	case errors.ErrNotFound.Is(err):
		return &Set{Owner: addr}, nil
	default:
		return nil, err
	}
}

// Save writes the wallet. An empty wallet is removed from the store.
func (b Bucket) Save(db payday.KVStore, set *Set) error {
	if len(set.Coins) == 0 {
		err := b.Delete(db, set.Owner)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	return b.Put(db, set.Owner, set)
}
