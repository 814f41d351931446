package sigs

import (
	"context"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/x"
)

type signersKey struct{}

func withSigners(ctx payday.Context, signers []payday.Condition) payday.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// Authenticate reads the signers stored by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx payday.Context) []payday.Condition {
	signers, _ := ctx.Value(signersKey{}).([]payday.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx payday.Context, addr payday.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if s.Address().Equals(addr) {
			return true
		}
	}
	return false
}
