package rewards

import "github.com/iov-one/payday/errors"

// Reserved codes 1000~1009
var (
	// ErrTooEarly is returned when a new cycle is started before the
	// distribution interval elapsed.
	ErrTooEarly = errors.Register(1000, "too early for distribution")

	// ErrAlreadyActive is returned when a cycle is started while another
	// one is in progress.
	ErrAlreadyActive = errors.Register(1001, "distribution already active")

	// ErrNotActive is returned by operations that require an active cycle.
	ErrNotActive = errors.Register(1002, "distribution not active")

	// ErrCalculation is returned when an arithmetic operation cannot be
	// completed.
	ErrCalculation = errors.Register(1003, "calculation error")

	// ErrInsufficientBalance is returned for a holder whose balance is
	// below the eligibility threshold.
	ErrInsufficientBalance = errors.Register(1004, "insufficient balance")
)
