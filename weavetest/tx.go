package weavetest

import "github.com/iov-one/payday"

// Tx represents a single message that is to be processed, together with its
// signers.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg payday.Msg
	// Signers are the already verified conditions that authorized this
	// transaction.
	Signers []payday.Condition
	// Err if set is returned by any method call.
	Err error
}

var _ payday.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (payday.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) GetSigners() []payday.Condition {
	return tx.Signers
}

// Msg represents a payday message.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the Validate method.
	Err error
}

var _ payday.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
