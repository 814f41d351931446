package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
)

// isPath is the expected format of a message path.
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows to register handlers for messages and dispatches every
// transaction to the handler registered for the path of its message.
type Router struct {
	routes map[string]payday.Handler
}

var _ payday.Registry = (*Router)(nil)
var _ payday.Handler = (*Router)(nil)

// NewRouter returns a router without any handler registered.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]payday.Handler),
	}
}

// Handle registers a handler for messages of the same path as the given
// one. It panics if the path is invalid or already taken, as this is always
// a programming error.
func (r *Router) Handle(m payday.Msg, h payday.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid message path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for given path. For an unknown path
// a handler that always fails with ErrNotFound is returned.
func (r *Router) Handler(path string) payday.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the handler of the message path.
func (r *Router) Check(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Check(ctx, db, tx)
}

// Deliver dispatches to the handler of the message path.
func (r *Router) Deliver(ctx payday.Context, db payday.KVStore, tx payday.Tx) (*payday.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Deliver(ctx, db, tx)
}

type notFoundHandler string

func (path notFoundHandler) Check(payday.Context, payday.KVStore, payday.Tx) (*payday.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", string(path))
}

func (path notFoundHandler) Deliver(payday.Context, payday.KVStore, payday.Tx) (*payday.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", string(path))
}
