// Package crypto holds the ed25519 keys that sign operations. A public key
// is a condition of the sigs extension, so its address is where the key
// holder keeps tokens.
package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is the extension of every key condition.
const ExtensionName = "sigs"

const keyType = "ed25519"

// Signer signs operations. The distribution authority is a Signer, which
// leaves room for keys that never leave a device.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() *PublicKey
}

type PublicKey struct {
	key ed25519.PublicKey
}

// Verify reports whether sig is the signature of message by this key.
func (p *PublicKey) Verify(message, sig []byte) bool {
	return len(sig) == ed25519.SignatureSize && ed25519.Verify(p.key, message, sig)
}

// Condition returns sigs/ed25519/<public key>.
func (p *PublicKey) Condition() payday.Condition {
	return payday.NewCondition(ExtensionName, keyType, p.key)
}

func (p *PublicKey) Address() payday.Address {
	return p.Condition().Address()
}

type PrivateKey struct {
	key ed25519.PrivateKey
}

var _ Signer = (*PrivateKey)(nil)

// GenerateKey returns a new random key.
func GenerateKey() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{key: priv}
}

// KeyFromSeed derives a key from a 32 byte seed. The same seed always gives
// the same key.
func KeyFromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}
}

func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(p.key) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "private key not loaded")
	}
	return ed25519.Sign(p.key, message), nil
}

func (p *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{key: p.key.Public().(ed25519.PublicKey)}
}

// MarshalJSON writes the hex encoded seed. The key file of paydayd holds
// this form.
func (p *PrivateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(p.key.Seed()))
}

func (p *PrivateKey) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	seed, err := hex.DecodeString(s)
	switch {
	case err != nil:
		return errors.Wrapf(errors.ErrInput, "key seed: %s", err)
	case len(seed) != ed25519.SeedSize:
		return errors.Wrapf(errors.ErrInput, "key seed of %d bytes", len(seed))
	}
	*p = *KeyFromSeed(seed)
	return nil
}
