package sigs

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/crypto"
	"github.com/iov-one/payday/errors"
)

// Decorator exposes the verified signers of an operation to the handlers
// below it. Only key conditions can sign. By default an unsigned operation
// is rejected.
type Decorator struct {
	optional bool
}

var _ payday.Decorator = Decorator{}

func NewDecorator() Decorator { return Decorator{} }

// AllowMissingSigs lets unsigned operations through with no signers, for
// messages like payouts that anybody may submit.
func (d Decorator) AllowMissingSigs() Decorator {
	d.optional = true
	return d
}

func (d Decorator) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx, next payday.Checker) (*payday.CheckResult, error) {
	signed, err := d.authenticate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(signed, db, tx)
}

func (d Decorator) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx, next payday.Deliverer) (*payday.DeliverResult, error) {
	signed, err := d.authenticate(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(signed, db, tx)
}

func (d Decorator) authenticate(ctx payday.Context, tx payday.Tx) (payday.Context, error) {
	stx, _ := tx.(SignedTx)
	if stx == nil || len(stx.GetSigners()) == 0 {
		if d.optional {
			return withSigners(ctx, nil), nil
		}
		return nil, errors.Wrap(errors.ErrUnauthorized, "operation not signed")
	}
	signers := stx.GetSigners()
	for i, s := range signers {
		ext, _, _, err := s.Parse()
		if err != nil {
			return nil, errors.Wrapf(err, "signer %d", i)
		}
		if ext != crypto.ExtensionName {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "signer %d: %s is not a key", i, s)
		}
	}
	return withSigners(ctx, signers), nil
}
