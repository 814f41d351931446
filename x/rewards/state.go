package rewards

import "github.com/iov-one/payday/errors"

// operation is an action that can be applied to the distribution cycle.
type operation string

const (
	opStart      operation = "start"
	opAccumulate operation = "accumulate"
	opFinalize   operation = "finalize"
	opPayout     operation = "payout"
	opEnd        operation = "end"
	opConfigure  operation = "configure"
)

// transitions declares for every state the operations allowed in it and the
// state each of them leads to.
var transitions = map[State]map[operation]State{
	State_Idle: {
		opStart:     State_Active,
		opConfigure: State_Idle,
	},
	State_Active: {
		opAccumulate: State_Active,
		opFinalize:   State_Active,
		opPayout:     State_Active,
		opEnd:        State_Idle,
	},
}

// transit returns the state the given operation leads to when applied in
// state from. An error is returned if the operation is not allowed.
func transit(from State, op operation) (State, error) {
	allowed, ok := transitions[from]
	if !ok {
		return from, errors.Wrapf(errors.ErrState, "unknown state %s", from)
	}
	if to, ok := allowed[op]; ok {
		return to, nil
	}
	switch {
	case op == opStart:
		return from, errors.Wrap(ErrAlreadyActive, "cannot start")
	case from == State_Idle:
		return from, errors.Wrapf(ErrNotActive, "cannot %s", op)
	default:
		return from, errors.Wrapf(errors.ErrState, "cannot %s in %s", op, from)
	}
}
