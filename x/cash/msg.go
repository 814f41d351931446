package cash

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/coin"
	"github.com/iov-one/payday/errors"
)

var _ payday.Msg = (*SendMsg)(nil)

const maxMemoSize int = 128

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var err error
	if coin.IsEmpty(s.Amount) || !s.Amount.IsPositive() {
		err = errors.Field("Amount", errors.ErrAmount, "non-positive SendMsg: %v", s.Amount)
	} else {
		err = errors.AppendField(err, "Amount", s.Amount.Validate())
	}
	err = errors.AppendField(err, "Source", s.Source.Validate())
	err = errors.AppendField(err, "Destination", s.Destination.Validate())
	if len(s.Memo) > maxMemoSize {
		err = errors.AppendField(err, "Memo", errors.ErrInput.New("memo too long"))
	}
	return err
}
