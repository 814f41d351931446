package coin

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"regexp"
	"strconv"

	"github.com/iov-one/payday/errors"
)

// IsCC reports whether s is a currency code: 3 or 4 upper case letters.
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// humanRx matches "<amount> <ticker>", the space being optional.
var humanRx = regexp.MustCompile(`^\s*(\d+)\s*([A-Z]{3,4})\s*$`)

func NewCoin(amount uint64, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: amount}
}

func NewCoinp(amount uint64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// IsEmpty is true for a nil coin and for a zero amount.
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

func (c Coin) IsZero() bool     { return c.Amount == 0 }
func (c Coin) IsPositive() bool { return c.Amount > 0 }

func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// Add returns the sum of both coins. A zero coin without a ticker adds to
// any currency.
func (c Coin) Add(o Coin) (Coin, error) {
	switch {
	case o.IsZero() && o.Ticker == "":
		return c, nil
	case c.IsZero() && c.Ticker == "":
		return o, nil
	case c.Ticker != o.Ticker:
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "cannot add %s to %s", o.Ticker, c.Ticker)
	}
	sum, carry := bits.Add64(c.Amount, o.Amount, 0)
	if carry != 0 {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%d + %d", c.Amount, o.Amount)
	}
	return NewCoin(sum, c.Ticker), nil
}

// Subtract returns c less o. Amounts are never negative, so taking more
// than c holds is ErrAmount.
func (c Coin) Subtract(o Coin) (Coin, error) {
	switch {
	case o.IsZero():
		return c, nil
	case c.Ticker != o.Ticker:
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "cannot subtract %s from %s", o.Ticker, c.Ticker)
	}
	diff, borrow := bits.Sub64(c.Amount, o.Amount, 0)
	if borrow != 0 {
		return Coin{}, errors.Wrapf(errors.ErrAmount, "%d is less than %d", c.Amount, o.Amount)
	}
	return NewCoin(diff, c.Ticker), nil
}

func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "ticker %q", c.Ticker)
	}
	return nil
}

// String returns the form accepted by ParseHumanFormat.
func (c Coin) String() string {
	if c.Ticker == "" {
		return strconv.FormatUint(c.Amount, 10)
	}
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// ParseHumanFormat reads a coin written as "<amount> <ticker>", for example
// "1000 IOV".
func ParseHumanFormat(s string) (Coin, error) {
	m := humanRx.FindStringSubmatch(s)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "coin %q", s)
	}
	amount, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "amount %s", m[1])
	}
	return NewCoin(amount, m[2]), nil
}

// UnmarshalJSON accepts the human format string as well as an object with
// ticker and amount.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		parsed, err := ParseHumanFormat(s)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	var obj struct {
		Ticker string `json:"ticker"`
		Amount uint64 `json:"amount"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*c = NewCoin(obj.Amount, obj.Ticker)
	return nil
}
