package coin

import (
	"sort"

	"github.com/iov-one/payday/errors"
)

// Coins is a wallet content: at most one positive coin per currency,
// ordered by ticker. Operations return a new value and leave the receiver
// untouched.
type Coins []*Coin

// NormalizeCoins merges coins of the same currency, drops empty ones and
// orders the result by ticker.
func NormalizeCoins(cs Coins) (Coins, error) {
	var (
		res Coins
		err error
	)
	for _, c := range cs {
		if IsEmpty(c) {
			continue
		}
		if res, err = res.Add(*c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// index returns the position of ticker, or where it belongs if absent.
func (cs Coins) index(ticker string) (int, bool) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= ticker })
	return i, i < len(cs) && cs[i].Ticker == ticker
}

func (cs Coins) clone() Coins {
	res := make(Coins, len(cs))
	for i, c := range cs {
		cpy := *c
		res[i] = &cpy
	}
	return res
}

// Add returns the wallet increased by c.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.clone(), nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	res := cs.clone()
	i, found := res.index(c.Ticker)
	if found {
		sum, err := res[i].Add(c)
		if err != nil {
			return nil, err
		}
		res[i] = &sum
		return res, nil
	}
	res = append(res, nil)
	copy(res[i+1:], res[i:])
	res[i] = &c
	return res, nil
}

// Subtract returns the wallet decreased by c. A currency that drops to zero
// is removed. Taking more than the wallet holds is ErrAmount.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.clone(), nil
	}
	i, found := cs.index(c.Ticker)
	if !found {
		return nil, errors.Wrapf(errors.ErrAmount, "no %s held", c.Ticker)
	}
	diff, err := cs[i].Subtract(c)
	if err != nil {
		return nil, err
	}
	res := cs.clone()
	if diff.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = &diff
	return res, nil
}

// Balance returns the amount held in the ticker currency.
func (cs Coins) Balance(ticker string) uint64 {
	if i, found := cs.index(ticker); found {
		return cs[i].Amount
	}
	return 0
}

// Contains reports whether the wallet holds at least c.
func (cs Coins) Contains(c Coin) bool {
	return cs.Balance(c.Ticker) >= c.Amount
}

func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate checks the wallet is in normalized form.
func (cs Coins) Validate() error {
	var errs error
	for i, c := range cs {
		switch {
		case c == nil:
			errs = errors.Append(errs, errors.Wrapf(errors.ErrEmpty, "coin %d", i))
			continue
		case c.IsZero():
			errs = errors.Append(errs, errors.Wrapf(errors.ErrState, "zero %s", c.Ticker))
		case i > 0 && cs[i-1] != nil && cs[i-1].Ticker >= c.Ticker:
			errs = errors.Append(errs, errors.Wrapf(errors.ErrState, "%s after %s", c.Ticker, cs[i-1].Ticker))
		}
		errs = errors.Append(errs, c.Validate())
	}
	return errs
}
