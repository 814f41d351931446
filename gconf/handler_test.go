package gconf

import (
	"context"
	"testing"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/coin"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/store"
	"github.com/iov-one/payday/weavetest"
	"github.com/iov-one/payday/weavetest/assert"
)

func TestUpdateHandler(t *testing.T) {
	owner := weavetest.NewCondition()
	successor := weavetest.NewCondition()
	current := &myconfig{Owner: owner.Address(), Num: 600, Str: "IOV", Cn: coin.NewCoinp(1000, "IOV")}

	cases := map[string]struct {
		stored  *myconfig
		msg     payday.Msg
		signers []payday.Condition
		wantErr *errors.Error
		want    *myconfig
	}{
		"owner changes some values": {
			stored:  current,
			msg:     &myconfigMsg{Patch: &myconfig{Num: 60, Cn: coin.NewCoinp(5, "IOV")}},
			signers: []payday.Condition{owner},
			want:    &myconfig{Owner: owner.Address(), Num: 60, Str: "IOV", Cn: coin.NewCoinp(5, "IOV")},
		},
		"zero values keep the current ones": {
			stored:  current,
			msg:     &myconfigMsg{Patch: &myconfig{Str: "RWD"}},
			signers: []payday.Condition{owner},
			want:    &myconfig{Owner: owner.Address(), Num: 600, Str: "RWD", Cn: coin.NewCoinp(1000, "IOV")},
		},
		"owner hands over": {
			stored:  current,
			msg:     &myconfigMsg{Patch: &myconfig{Owner: successor.Address()}},
			signers: []payday.Condition{owner},
			want:    &myconfig{Owner: successor.Address(), Num: 600, Str: "IOV", Cn: coin.NewCoinp(1000, "IOV")},
		},
		"only the owner can change it": {
			stored:  current,
			msg:     &myconfigMsg{Patch: &myconfig{Num: 1}},
			signers: []payday.Condition{successor},
			wantErr: errors.ErrUnauthorized,
			want:    current,
		},
		"result must be valid": {
			stored:  current,
			msg:     &myconfigMsg{Patch: &myconfig{Cn: &coin.Coin{Amount: 4}}},
			signers: []payday.Condition{owner},
			wantErr: errors.ErrCurrency,
			want:    current,
		},
		"patch is required": {
			stored:  current,
			msg:     &myconfigMsg{},
			signers: []payday.Condition{owner},
			wantErr: errors.ErrEmpty,
			want:    current,
		},
		"message without a patch": {
			stored:  current,
			msg:     &weavetest.Msg{RoutePath: "myconfig"},
			signers: []payday.Condition{owner},
			wantErr: errors.ErrMsg,
			want:    current,
		},
		"configuration must exist": {
			msg:     &myconfigMsg{Patch: &myconfig{Owner: owner.Address()}},
			signers: []payday.Condition{owner},
			wantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.stored != nil {
				assert.Nil(t, Save(db, "mypkg", tc.stored))
			}
			auth := &weavetest.CtxAuth{Key: "auth"}
			h := NewUpdateHandler("mypkg", &myconfig{}, auth)
			ctx := auth.SetConditions(context.Background(), tc.signers...)
			tx := &weavetest.Tx{Msg: tc.msg}

			cache := db.CacheWrap()
			_, err := h.Check(ctx, cache, tx)
			assert.IsErr(t, tc.wantErr, err)
			cache.Discard()

			cache = db.CacheWrap()
			_, err = h.Deliver(ctx, cache, tx)
			assert.IsErr(t, tc.wantErr, err)
			if err == nil {
				assert.Nil(t, cache.Write())
			}

			if tc.want != nil {
				var got myconfig
				assert.Nil(t, Load(db, "mypkg", &got))
				assert.Equal(t, tc.want, &got)
			}
		})
	}
}

type myconfigMsg struct {
	Patch *myconfig
}

var _ PatchMsg = (*myconfigMsg)(nil)

func (msg *myconfigMsg) Path() string { return "myconfig" }

func (msg *myconfigMsg) Validate() error {
	if msg.Patch != nil && msg.Patch.Cn != nil {
		return msg.Patch.Cn.Validate()
	}
	return nil
}

func (msg *myconfigMsg) ConfigPatch() OwnedConfig {
	if msg.Patch == nil {
		return nil
	}
	return msg.Patch
}
