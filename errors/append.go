package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is provided, nil is returned.
// If only one non-nil error is provided, it is returned as it is.
func Append(errs ...error) error {
	var flat []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		// Flatten so that nested collections are represented as a
		// single list.
		if m, ok := e.(*multiErr); ok {
			flat = append(flat, m.errors...)
			continue
		}
		flat = append(flat, e)
	}

	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return &multiErr{errors: flat}
	}
}

// multiErr is a collection of errors returned together, for example as the
// result of a validation that checks every field.
type multiErr struct {
	errors []error
}

func (m *multiErr) Error() string {
	points := make([]string, len(m.errors))
	for i, err := range m.errors {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf(
		"%d errors occurred:\n\t%s\n",
		len(m.errors), strings.Join(points, "\n\t"))
}

// Unpack returns all errors clubbed by this instance.
func (m *multiErr) Unpack() []error {
	return m.errors
}

// Code returns the code of the first error. This is consistent with the
// fail-fast approach where the first reported problem is the most important
// one.
func (m *multiErr) Code() uint32 {
	return code(m.errors[0])
}

var _ unpacker = (*multiErr)(nil)
