package payday

import (
	"reflect"

	"github.com/iov-one/payday/errors"
)

// Msg is the request of an operation, for example starting a distribution
// cycle or paying out a holder.
type Msg interface {
	// Path routes the message to its handler, as "<extension>/<name>".
	Path() string

	// Validate checks the message on its own, without reading state.
	Validate() error
}

// Tx carries a message to the engine. Signed transactions also carry the
// verified signers, see the sigs extension.
type Tx interface {
	GetMsg() (Msg, error)
}

// GetPath returns the path of the carried message, or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into dest and validates it. ErrType is
// returned if the message is not of the type of dest.
func LoadMsg(tx Tx, dest Msg) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "message")
	case msg == nil:
		return errors.Wrap(errors.ErrMsg, "no message")
	}
	src, dst := reflect.ValueOf(msg), reflect.ValueOf(dest)
	if src.Type() != dst.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", dest, msg)
	}
	dst.Elem().Set(src.Elem())
	return dest.Validate()
}
