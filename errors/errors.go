package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors of the payday core. Codes below 100 belong to this package,
// extensions register theirs above.
var (
	// ErrUnauthorized is returned when a required signature is missing.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when a record does not exist, for example a
	// holder that was not counted in the current cycle.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned when a message cannot be decoded or routed.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned when a record fails its validation on save.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned for an operation that was already applied,
	// for example the second payout of a holder within one cycle.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that correct wiring never reaches.
	ErrHuman = Register(7, "coding error")

	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when an operation does not fit the state of
	// the record it acts on.
	ErrState = Register(10, "invalid state")

	ErrType = Register(11, "invalid type")

	// ErrAmount is returned for malformed amounts and insufficient funds.
	ErrAmount = Register(13, "invalid amount")

	ErrInput = Register(14, "invalid input")

	// ErrOverflow is returned when a result does not fit its integer type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrCurrency is returned for unknown or mismatched tickers.
	ErrCurrency = Register(17, "currency")

	// ErrDatabase wraps failures of the underlying store.
	ErrDatabase = Register(18, "database")

	// ErrPanic is the root of every recovered panic. Its message is never
	// shown outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry holds every root error by code. Code 1 stands for errors that
// carry no code and cannot be registered.
var registry = map[uint32]*Error{1: nil}

// Register declares a root error. It panics if the code is taken, so it
// must be called only from package variable declarations.
func Register(code uint32, description string) *Error {
	if taken, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already registered for %q", code, taken.Error()))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error. Errors created at runtime wrap one of them, so that
// their category and code survive any added context.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

// Code returns the code this error was registered with.
func (e Error) Code() uint32 { return e.code }

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is a shortcut for Wrapf(e, format, args...).
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// Is reports whether err is e or wraps it. Collections match if any of
// their errors does. A nil root error matches only a nil err.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	var found bool
	walk(err, func(cur error) bool {
		if cur == e {
			found = true
		}
		return !found
	})
	return found
}

// Wrap adds description to err. The stack of the caller is recorded unless
// err carries one already. A nil err gives nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{parent: withStack(err), msg: description}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{parent: withStack(err), msg: fmt.Sprintf(format, args...)}
}

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// deferred.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrappedError struct {
	parent error
	msg    string
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

func withStack(err error) error {
	if stackTrace(err) != nil {
		return err
	}
	return errors.WithStack(err)
}

// walk calls visit for err and for every error it wraps, collections
// included. The errors below one for which visit returns false are not
// visited.
func walk(err error, visit func(error) bool) {
	for !isNilErr(err) && visit(err) {
		switch e := err.(type) {
		case unpacker:
			for _, inner := range e.Unpack() {
				walk(inner, visit)
			}
			return
		case causer:
			err = e.Cause()
		default:
			return
		}
	}
}

// isNilErr also treats a typed nil pointer as nil.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

type causer interface {
	Cause() error
}

type unpacker interface {
	Unpack() []error
}
