package app

import (
	"testing"

	"github.com/iov-one/payday/coin"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/weavetest"
	"github.com/iov-one/payday/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxSignatures(t *testing.T) {
	alice := weavetest.NewKey()
	bob := weavetest.NewKey()
	msg := &cash.SendMsg{
		Source:      alice.PublicKey().Address(),
		Destination: bob.PublicKey().Address(),
		Amount:      coin.NewCoinp(5, "IOV"),
	}

	cases := map[string]struct {
		build   func() *Tx
		wantErr *errors.Error
		signers int
	}{
		"unsigned": {
			build:   func() *Tx { return NewTx(msg) },
			signers: 0,
		},
		"signed by two": {
			build: func() *Tx {
				tx := NewTx(msg)
				require.NoError(t, tx.Sign("test-chain", alice))
				require.NoError(t, tx.Sign("test-chain", bob))
				return tx
			},
			signers: 2,
		},
		"signed for another chain": {
			build: func() *Tx {
				tx := NewTx(msg)
				require.NoError(t, tx.Sign("other-chain", alice))
				return tx
			},
			wantErr: errors.ErrUnauthorized,
		},
		"message changed after signing": {
			build: func() *Tx {
				changed := *msg
				tx := NewTx(&changed)
				require.NoError(t, tx.Sign("test-chain", alice))
				changed.Memo = "more please"
				return tx
			},
			wantErr: errors.ErrUnauthorized,
		},
		"missing public key": {
			build: func() *Tx {
				tx := NewTx(msg)
				tx.Signatures = append(tx.Signatures, &Signature{Signature: []byte("sig")})
				return tx
			},
			wantErr: errors.ErrEmpty,
		},
		"not a protobuf message": {
			build: func() *Tx {
				return NewTx(&weavetest.Msg{RoutePath: "test"})
			},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			tx := tc.build()
			err := tx.Verify("test-chain")
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, tx.GetSigners(), tc.signers)
		})
	}
}

func TestTxSignersMatchKeys(t *testing.T) {
	key := weavetest.NewKey()
	tx := NewTx(&cash.SendMsg{})
	require.NoError(t, tx.Sign("test-chain", key))
	require.NoError(t, tx.Verify("test-chain"))
	require.Len(t, tx.GetSigners(), 1)
	assert.True(t, key.PublicKey().Address().Equals(tx.GetSigners()[0].Address()))
}
