package rewards

import (
	"math"
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/weavetest/assert"
)

func TestReward(t *testing.T) {
	cases := map[string]struct {
		holding uint64
		total   uint64
		pool    uint64
		want    uint64
		wantErr *errors.Error
	}{
		"proportional share": {
			holding: 1500,
			total:   5000,
			pool:    1000,
			want:    300,
		},
		"remaining share": {
			holding: 3500,
			total:   5000,
			pool:    1000,
			want:    700,
		},
		"result is rounded down": {
			holding: 2,
			total:   7,
			pool:    10,
			want:    2,
		},
		"single holder takes everything": {
			holding: 42,
			total:   42,
			pool:    math.MaxUint64,
			want:    math.MaxUint64,
		},
		"product does not fit 64 bits": {
			holding: math.MaxUint64 - 1,
			total:   math.MaxUint64,
			pool:    math.MaxUint64,
			want:    math.MaxUint64 - 1,
		},
		"empty pool": {
			holding: 1500,
			total:   5000,
			pool:    0,
			want:    0,
		},
		"tiny share is zero": {
			holding: 1000,
			total:   1000000,
			pool:    999,
			want:    0,
		},
		"zero total": {
			holding: 1500,
			total:   0,
			pool:    1000,
			wantErr: ErrCalculation,
		},
		"quotient overflow": {
			holding: math.MaxUint64,
			total:   1,
			pool:    2,
			wantErr: ErrCalculation,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := Reward(tc.holding, tc.total, tc.pool)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRewardMatchesArbitraryPrecision(t *testing.T) {
	f := fuzz.New().NilChance(0)

	for i := 0; i < 2000; i++ {
		var holding, total, pool uint64
		f.Fuzz(&holding)
		f.Fuzz(&total)
		f.Fuzz(&pool)
		if total == 0 {
			total = 1
		}
		if holding > total {
			holding, total = total, holding
		}

		want := new(big.Int).Mul(new(big.Int).SetUint64(holding), new(big.Int).SetUint64(pool))
		want.Quo(want, new(big.Int).SetUint64(total))

		got, err := Reward(holding, total, pool)
		if err != nil {
			t.Fatalf("reward(%d, %d, %d): %s", holding, total, pool, err)
		}
		if !want.IsUint64() || want.Uint64() != got {
			t.Fatalf("reward(%d, %d, %d): want %s, got %d", holding, total, pool, want, got)
		}
	}
}

func TestRewardsNeverExceedPool(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(1, 50)

	for i := 0; i < 500; i++ {
		var (
			balances []uint32
			pool     uint64
		)
		f.Fuzz(&balances)
		f.Fuzz(&pool)

		var total uint64
		for _, b := range balances {
			total += uint64(b)
		}
		if total == 0 {
			continue
		}

		paid := new(big.Int)
		for _, b := range balances {
			r, err := Reward(uint64(b), total, pool)
			if err != nil {
				t.Fatalf("reward(%d, %d, %d): %s", b, total, pool, err)
			}
			paid.Add(paid, new(big.Int).SetUint64(r))
		}
		if paid.Cmp(new(big.Int).SetUint64(pool)) > 0 {
			t.Fatalf("paid %s out of a %d pool", paid, pool)
		}
	}
}

func TestAccumulate(t *testing.T) {
	cases := map[string]struct {
		total       uint64
		balances    []uint64
		wantTotal   uint64
		wantCounted int
		wantErr     *errors.Error
	}{
		"balances below the threshold are not counted": {
			total:       0,
			balances:    []uint64{1500, 500, 3500},
			wantTotal:   5000,
			wantCounted: 2,
		},
		"threshold is inclusive": {
			total:       10,
			balances:    []uint64{1000, 999},
			wantTotal:   1010,
			wantCounted: 1,
		},
		"empty batch": {
			total:     77,
			wantTotal: 77,
		},
		"overflow leaves the total unchanged": {
			total:     math.MaxUint64 - 2000,
			balances:  []uint64{1000, 1001},
			wantTotal: math.MaxUint64 - 2000,
			wantErr:   ErrCalculation,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			total, counted, err := Accumulate(tc.total, 1000, tc.balances...)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.wantTotal, total)
			assert.Equal(t, tc.wantCounted, counted)
		})
	}
}
