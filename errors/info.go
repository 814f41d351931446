package errors

import "fmt"

const (
	// SuccessCode is the code reported for a nil error.
	SuccessCode = 0

	// Errors that do not wrap a root error are reported with internalCode
	// and, outside of debug mode, with internalLog instead of their message.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Info returns the code and the message under which err is reported to a
// user. Messages of panics and of errors without a code may leak
// implementation details and are replaced unless debug is set. In debug mode
// the message includes the stack trace.
func Info(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessCode, ""
	}
	c := code(err)
	switch {
	case debug:
		return c, fmt.Sprintf("%+v", err)
	case c == internalCode, ErrPanic.Is(err):
		return c, internalLog
	default:
		return c, err.Error()
	}
}

// code returns the code of the outermost error that has one.
func code(err error) uint32 {
	c := internalCode
	walk(err, func(cur error) bool {
		if c != internalCode {
			return false
		}
		if withCode, ok := cur.(interface{ Code() uint32 }); ok {
			c = withCode.Code()
			return false
		}
		return true
	})
	return c
}
