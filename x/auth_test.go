package x

import (
	"context"
	"testing"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/weavetest"
	"github.com/iov-one/payday/weavetest/assert"
)

func TestChainAuth(t *testing.T) {
	authority := weavetest.NewCondition()
	holder := weavetest.NewCondition()
	stranger := weavetest.NewCondition()

	sigs := &weavetest.CtxAuth{Key: "sigs"}
	ctx := sigs.SetConditions(context.Background(), holder, authority)

	cases := map[string]struct {
		auth     Authenticator
		want     []payday.Condition
		notFound payday.Condition
	}{
		"nothing chained": {
			auth:     ChainAuth(),
			notFound: authority,
		},
		"single authenticator": {
			auth:     ChainAuth(&weavetest.Auth{Signer: authority}),
			want:     []payday.Condition{authority},
			notFound: holder,
		},
		"conditions keep the order of the chain": {
			auth:     ChainAuth(&weavetest.Auth{Signer: holder}, &weavetest.Auth{Signer: authority}),
			want:     []payday.Condition{holder, authority},
			notFound: stranger,
		},
		"a condition is listed once": {
			auth: ChainAuth(
				&weavetest.Auth{Signer: authority},
				sigs,
				&weavetest.Auth{Signers: []payday.Condition{holder, authority}}),
			want:     []payday.Condition{authority, holder},
			notFound: stranger,
		},
		"context of another key is not visible": {
			auth:     ChainAuth(&weavetest.CtxAuth{Key: "other"}),
			notFound: holder,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.auth.GetConditions(ctx))
			for _, c := range tc.want {
				assert.Nil(t, RequireAddress(ctx, tc.auth, c.Address(), "test"))
			}
			err := RequireAddress(ctx, tc.auth, tc.notFound.Address(), "test")
			assert.IsErr(t, errors.ErrUnauthorized, err)
		})
	}
}

func TestRequireAddressWithoutAddress(t *testing.T) {
	auth := &weavetest.Auth{Signer: weavetest.NewCondition()}
	err := RequireAddress(context.Background(), auth, nil, "owner")
	assert.IsErr(t, errors.ErrUnauthorized, err)
}
