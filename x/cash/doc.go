/*
Package cash is the ledger used by the distribution engine.

Every address owns a wallet holding a set of coins. There is no logic in the
coins, except that the balance of any coin may not go below zero. Thus, this
implementation is referred to as cash. Simple and safe.

The rewards extension uses the Controller to read holder balances and to
move rewards out of the vault. A transfer that would overdraw a wallet fails
with ErrAmount and the error is returned to the caller unchanged.
*/
package cash
