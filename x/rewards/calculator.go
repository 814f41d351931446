package rewards

import (
	"math/bits"

	"github.com/iov-one/payday/errors"
)

// Reward returns floor(holding * pool / total), the share of the pool that
// belongs to a holder.
//
// The product is computed on 128 bits so no precision is lost. ErrCalculation
// is returned if total is zero or if the result does not fit in 64 bits. As
// long as the holding is part of the total the result is never greater than
// the pool.
func Reward(holding, total, pool uint64) (uint64, error) {
	if total == 0 {
		return 0, errors.Wrap(ErrCalculation, "total eligible balance is zero")
	}
	hi, lo := bits.Mul64(holding, pool)
	// Div64 panics if the quotient overflows.
	if hi >= total {
		return 0, errors.Wrapf(ErrCalculation, "reward of %d out of %d overflows", holding, total)
	}
	quo, _ := bits.Div64(hi, lo, total)
	return quo, nil
}

// Accumulate returns total increased by every balance that is at least threshold,
// and the number of balances counted. ErrCalculation is returned on overflow,
// in which case nothing is counted.
func Accumulate(total, threshold uint64, balances ...uint64) (uint64, int, error) {
	sum := total
	var counted int
	for _, b := range balances {
		if b < threshold {
			continue
		}
		next, carry := bits.Add64(sum, b, 0)
		if carry != 0 {
			return total, 0, errors.Wrapf(ErrCalculation, "total eligible balance overflows adding %d", b)
		}
		sum = next
		counted++
	}
	return sum, counted, nil
}
