package weavetest

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/crypto"
)

// NewKey returns a new random private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenerateKey()
}

// NewCondition returns a condition of a new random key.
func NewCondition() payday.Condition {
	return NewKey().PublicKey().Condition()
}

// RandomAddr returns the address of a new random key.
func RandomAddr() payday.Address {
	return NewCondition().Address()
}
