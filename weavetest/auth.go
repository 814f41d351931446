package weavetest

import (
	"context"

	"github.com/iov-one/payday"
)

// Auth is an x.Authenticator that always reports the same signers: Signer
// followed by Signers.
type Auth struct {
	Signer  payday.Condition
	Signers []payday.Condition
}

func (a *Auth) GetConditions(payday.Context) []payday.Condition {
	conds := make([]payday.Condition, 0, len(a.Signers)+1)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return append(conds, a.Signers...)
}

func (a *Auth) HasAddress(ctx payday.Context, addr payday.Address) bool {
	return signedBy(a.GetConditions(ctx), addr)
}

// CtxAuth is an x.Authenticator reading the signers from the context, where
// SetConditions stored them under Key. Authenticators with different keys do
// not see each other's signers.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

// SetConditions returns a context signed by conds.
func (a *CtxAuth) SetConditions(ctx payday.Context, conds ...payday.Condition) payday.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx payday.Context) []payday.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]payday.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx payday.Context, addr payday.Address) bool {
	return signedBy(a.GetConditions(ctx), addr)
}

func signedBy(conds []payday.Condition, addr payday.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
