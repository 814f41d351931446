package payday

import (
	"encoding/json"
)

// Handler executes the messages of one kind. Check runs the validation and
// authorization of an operation without keeping its writes. Deliver runs it
// for real.
type Handler interface {
	Checker
	Deliverer
}

type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around a handler, for example to verify signatures or to
// recover from a panic, and decides whether next is called.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message types to their handler.
type Registry interface {
	Handle(Msg, Handler)
}

// CheckResult is what a successful Check reports.
type CheckResult struct {
	Log  string
	Data []byte
}

// DeliverResult is what a successful Deliver reports. Data is the encoded
// record the operation produced, for example the distribution state after
// finalize or the holding after a payout.
type DeliverResult struct {
	Log  string
	Data []byte
}

// Options is the genesis document, one raw JSON value per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the value of key into obj. A missing key leaves obj
// unchanged.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}

// Initializer writes the initial state of an extension from genesis.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
