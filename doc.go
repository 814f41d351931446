/*
Package payday defines the common interfaces that glue together the payday
subpackages, as well as implementations of some of the simpler components
(when interfaces would be too much overhead).

payday computes and pays out proportional rewards to a population of token
holders. A holder i receives

	Ri = floor(Ti * X / Ttotal)

where Ti is the eligible balance of the holder, Ttotal the sum of all
eligible balances and X the size of the reward pool. The population can be
arbitrarily large, so the sum is collected incrementally in bounded batches
during a distribution cycle. See x/rewards for the protocol.

Every operation is a Msg routed to a Handler. Handlers operate on a KVStore
and receive a Context that carries the trusted block time, a logger and the
identities that authorized the operation. The app package executes
operations one at a time, atomically, against a cache-wrapped store.

We pass context through context.Context between app, middleware, and
handlers. There should exist two functions for every XYZ of type T that we
want to support in Context:

  WithXYZ(Context, T) Context
  XYZ(Context) (val T, ok bool)
*/
package payday
