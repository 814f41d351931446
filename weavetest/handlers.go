package weavetest

import "github.com/iov-one/payday"

// Handler is a mock implementation of the payday.Handler interface.
//
// Each method call is counted. Optionally a key can be written to the
// store, so that the atomicity of the caller can be tested.
type Handler struct {
	calls

	CheckResult payday.CheckResult
	CheckErr    error

	DeliverResult payday.DeliverResult
	DeliverErr    error

	// If set, the pair is written to the store before returning.
	WriteKey   []byte
	WriteValue []byte

	// If set, the handler panics with this value.
	Panic interface{}
}

var _ payday.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.CheckResult, error) {
	h.check++
	if err := h.act(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.DeliverResult, error) {
	h.deliver++
	if err := h.act(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) act(db payday.KVStore) error {
	if h.WriteKey != nil {
		if err := db.Set(h.WriteKey, h.WriteValue); err != nil {
			return err
		}
	}
	if h.Panic != nil {
		panic(h.Panic)
	}
	return nil
}
