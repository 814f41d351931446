package sigs

import (
	"github.com/iov-one/payday"
)

// SignedTx represents a transaction that was authorized by a list of
// signers. Every returned condition must be already verified.
type SignedTx interface {
	payday.Tx
	// GetSigners returns the conditions of all signers of the transaction.
	GetSigners() []payday.Condition
}
