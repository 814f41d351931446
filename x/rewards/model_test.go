package rewards

import (
	"testing"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/store"
	"github.com/iov-one/payday/weavetest"
	"github.com/iov-one/payday/weavetest/assert"
)

func TestConfigurationValidation(t *testing.T) {
	valid := func() *Configuration {
		c := DefaultConfiguration()
		c.Owner = weavetest.RandomAddr()
		c.TokenTicker = "IOV"
		return &c
	}

	cases := map[string]struct {
		conf    func() *Configuration
		wantErr map[string]*errors.Error
	}{
		"defaults with owner and ticker": {
			conf: valid,
			wantErr: map[string]*errors.Error{
				"Owner":       nil,
				"TokenTicker": nil,
			},
		},
		"missing owner": {
			conf: func() *Configuration {
				c := valid()
				c.Owner = nil
				return c
			},
			wantErr: map[string]*errors.Error{"Owner": errors.ErrInput},
		},
		"bad tickers": {
			conf: func() *Configuration {
				c := valid()
				c.TokenTicker = "io"
				c.RewardTicker = "rwd"
				return c
			},
			wantErr: map[string]*errors.Error{
				"TokenTicker":  errors.ErrCurrency,
				"RewardTicker": errors.ErrCurrency,
			},
		},
		"negative interval": {
			conf: func() *Configuration {
				c := valid()
				c.DistributionInterval = -1
				return c
			},
			wantErr: map[string]*errors.Error{"DistributionInterval": errors.ErrInput},
		},
		"interval above the limit": {
			conf: func() *Configuration {
				c := valid()
				c.DistributionInterval = 10000000000
				return c
			},
			wantErr: map[string]*errors.Error{"DistributionInterval": errors.ErrInput},
		},
		"longest interval": {
			conf: func() *Configuration {
				c := valid()
				c.DistributionInterval = MaxDistributionInterval
				return c
			},
			wantErr: map[string]*errors.Error{"DistributionInterval": nil},
		},
		"batch size out of range": {
			conf: func() *Configuration {
				c := valid()
				c.MaxBatchSize = maxBatchSizeLimit + 1
				return c
			},
			wantErr: map[string]*errors.Error{"MaxBatchSize": errors.ErrInput},
		},
		"zero batch size": {
			conf: func() *Configuration {
				c := valid()
				c.MaxBatchSize = 0
				return c
			},
			wantErr: map[string]*errors.Error{"MaxBatchSize": errors.ErrInput},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.conf().Validate()
			for field, want := range tc.wantErr {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestMsgValidation(t *testing.T) {
	cases := map[string]struct {
		msg     payday.Msg
		wantErr map[string]*errors.Error
	}{
		"accumulate requires holders": {
			msg:     &AccumulateMsg{},
			wantErr: map[string]*errors.Error{"Holders": errors.ErrEmpty},
		},
		"accumulate rejects an invalid holder": {
			msg:     &AccumulateMsg{Holders: []payday.Address{weavetest.RandomAddr(), payday.Address("short")}},
			wantErr: map[string]*errors.Error{"Holders": errors.ErrInput},
		},
		"valid accumulate": {
			msg:     &AccumulateMsg{Holders: []payday.Address{weavetest.RandomAddr()}},
			wantErr: map[string]*errors.Error{"Holders": nil},
		},
		"payout requires holder": {
			msg:     &PayoutMsg{},
			wantErr: map[string]*errors.Error{"Holder": errors.ErrInput},
		},
		"patch is required": {
			msg:     &UpdateConfigurationMsg{},
			wantErr: map[string]*errors.Error{"Patch": errors.ErrEmpty},
		},
		"tickers are fixed": {
			msg:     &UpdateConfigurationMsg{Patch: &Configuration{RewardTicker: "RWD"}},
			wantErr: map[string]*errors.Error{"Patch": errors.ErrState},
		},
		"patch limits": {
			msg: &UpdateConfigurationMsg{Patch: &Configuration{
				DistributionInterval: -5,
				MaxBatchSize:         maxBatchSizeLimit + 1,
			}},
			wantErr: map[string]*errors.Error{
				"Patch.DistributionInterval": errors.ErrInput,
				"Patch.MaxBatchSize":         errors.ErrInput,
			},
		},
		"patch interval above the limit": {
			msg:     &UpdateConfigurationMsg{Patch: &Configuration{DistributionInterval: MaxDistributionInterval + 1}},
			wantErr: map[string]*errors.Error{"Patch.DistributionInterval": errors.ErrInput},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantErr {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestHoldingBucket(t *testing.T) {
	db := store.MemStore()
	b := NewHoldingBucket()
	holder := weavetest.RandomAddr()

	_, err := b.Get(db, 1, holder)
	assert.IsErr(t, errors.ErrNotFound, err)

	assert.Nil(t, b.Save(db, &Holding{Holder: holder, Cycle: 1, Balance: 10}))

	got, err := b.Get(db, 1, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(10), got.Balance)

	// Records of different cycles do not collide.
	_, err = b.Get(db, 2, holder)
	assert.IsErr(t, errors.ErrNotFound, err)

	err = b.Save(db, &Holding{Holder: holder, Cycle: 1, Reward: 5})
	assert.IsErr(t, errors.ErrState, err)
}
