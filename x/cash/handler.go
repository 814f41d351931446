package cash

import (
	"fmt"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/x"
)

// RegisterRoutes registers the ledger operations.
func RegisterRoutes(r payday.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, ctrl))
}

// NewSendHandler returns the handler of SendMsg. The source account must
// sign the transfer. Insufficient funds are detected only on delivery.
func NewSendHandler(auth x.Authenticator, ctrl Controller) payday.Handler {
	return sendHandler{auth: auth, ctrl: ctrl}
}

type sendHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h sendHandler) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.CheckResult, error) {
	if _, err := h.authorized(ctx, tx); err != nil {
		return nil, err
	}
	return &payday.CheckResult{}, nil
}

func (h sendHandler) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.DeliverResult, error) {
	msg, err := h.authorized(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &payday.DeliverResult{
		Log: fmt.Sprintf("sent %s from %s to %s", msg.Amount, msg.Source, msg.Destination),
	}, nil
}

func (h sendHandler) authorized(ctx payday.Context, tx payday.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := payday.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Source, "source account"); err != nil {
		return nil, err
	}
	return &msg, nil
}
