package app

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/crypto"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/x/sigs"
)

// Signature authorizes a transaction on behalf of the key owner.
type Signature struct {
	PubKey    *crypto.PublicKey
	Signature []byte
}

// Tx is a single message together with the signatures that authorize it.
// Signers are known only after a successful Verify call.
type Tx struct {
	Msg        payday.Msg
	Signatures []*Signature

	signers []payday.Condition
}

var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction.
func NewTx(msg payday.Msg) *Tx {
	return &Tx{Msg: msg}
}

func (tx *Tx) GetMsg() (payday.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "nil message")
	}
	return tx.Msg, nil
}

// GetSigners returns the conditions of the verified signatures.
func (tx *Tx) GetSigners() []payday.Condition {
	return tx.signers
}

// Sign appends a signature of the given key. Signatures are bound to the
// chain, so they cannot be presented to another deployment.
func (tx *Tx) Sign(chainID string, key crypto.Signer) error {
	raw, err := SignBytes(chainID, tx.Msg)
	if err != nil {
		return err
	}
	sig, err := key.Sign(raw)
	if err != nil {
		return errors.Wrap(err, "cannot sign")
	}
	tx.Signatures = append(tx.Signatures, &Signature{
		PubKey:    key.PublicKey(),
		Signature: sig,
	})
	return nil
}

// Verify checks all signatures and sets the signers of the transaction.
func (tx *Tx) Verify(chainID string) error {
	raw, err := SignBytes(chainID, tx.Msg)
	if err != nil {
		return err
	}
	signers := make([]payday.Condition, 0, len(tx.Signatures))
	for i, s := range tx.Signatures {
		if s == nil || s.PubKey == nil {
			return errors.Wrapf(errors.ErrEmpty, "signature %d: missing public key", i)
		}
		if !s.PubKey.Verify(raw, s.Signature) {
			return errors.Wrapf(errors.ErrUnauthorized, "signature %d: invalid", i)
		}
		signers = append(signers, s.PubKey.Condition())
	}
	tx.signers = signers
	return nil
}

// SignBytes returns the bytes that are signed to authorize the message.
func SignBytes(chainID string, msg payday.Msg) ([]byte, error) {
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "nil message")
	}
	pm, ok := msg.(proto.Message)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T is not a protobuf message", msg)
	}
	raw, err := proto.Marshal(pm)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}

	var b bytes.Buffer
	b.WriteString(chainID)
	b.WriteByte(0)
	b.WriteString(msg.Path())
	b.WriteByte(0)
	b.Write(raw)
	return b.Bytes(), nil
}
