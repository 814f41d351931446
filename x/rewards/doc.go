/*
Package rewards implements the proportional distribution of a reward pool
among token holders.

Holder i receives

	Ri = floor(Ti * X / Ttotal)

where Ti is the eligible balance of the holder, Ttotal is the sum of all
eligible balances and X is the reward pool. A balance is eligible when it is
at least the configured minimum.

A distribution cycle is driven by the configured authority:

	start -> accumulate* -> finalize -> payout* -> end

Accumulation is done in bounded batches, each holder is counted at most once
per cycle. Finalize seals Ttotal and takes a snapshot of the vault balance as
X, so that the sum of all rewards of a cycle never exceeds X. The first payout
seals the cycle implicitly if finalize was not called. Payouts can be
submitted by anyone and in any order. The result of a payout is fully
determined by the recorded cycle state.

The reward pool is held by a vault address derived from a keyless condition.
Only this package can move funds out of the vault.
*/
package rewards
