package x

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
)

// Authenticator tells which conditions, usually signatures, the current
// operation fulfils. Handlers take one in their constructor, so that tests
// can authorize operations without signing them.
type Authenticator interface {
	GetConditions(payday.Context) []payday.Condition
	HasAddress(payday.Context, payday.Address) bool
}

// ChainAuth returns an Authenticator accepting the conditions of all given
// ones.
func ChainAuth(auths ...Authenticator) Authenticator {
	return multiAuth(auths)
}

type multiAuth []Authenticator

// GetConditions returns the conditions of all authenticators. Each
// condition is listed once, in the order it was first reported.
func (m multiAuth) GetConditions(ctx payday.Context) []payday.Condition {
	var all []payday.Condition
	for _, a := range m {
	next:
		for _, c := range a.GetConditions(ctx) {
			for _, seen := range all {
				if seen.Equals(c) {
					continue next
				}
			}
			all = append(all, c)
		}
	}
	return all
}

func (m multiAuth) HasAddress(ctx payday.Context, addr payday.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// RequireAddress returns ErrUnauthorized unless addr fulfilled a condition of
// the current operation. The role names addr in the error message.
func RequireAddress(ctx payday.Context, auth Authenticator, addr payday.Address, role string) error {
	if len(addr) == 0 {
		return errors.Wrapf(errors.ErrUnauthorized, "no %s address", role)
	}
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature required", role)
	}
	return nil
}
