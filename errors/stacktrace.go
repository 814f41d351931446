package errors

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

const thisPackage = "github.com/iov-one/payday/errors."

// Format prints the message for %s. %v appends the file and line the error
// was created at and %+v prints the whole stack before the message.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	stack := callerStack(e)
	switch {
	case s.Flag('+'):
		fmt.Fprintf(s, "%+v\n%s", stack, e.Error())
	case len(stack) > 0:
		file, line := location(stack[0])
		if i := strings.Index(file, "github.com/"); i >= 0 {
			file = file[i+len("github.com/"):]
		}
		fmt.Fprintf(s, "%s [%s:%d]", e.Error(), file, line)
	default:
		fmt.Fprint(s, e.Error())
	}
}

// stackTrace returns the first stack trace recorded in the chain of err.
func stackTrace(err error) errors.StackTrace {
	var st errors.StackTrace
	walk(err, func(cur error) bool {
		if t, ok := cur.(interface{ StackTrace() errors.StackTrace }); ok {
			st = t.StackTrace()
		}
		return st == nil
	})
	return st
}

// callerStack returns the stack of err without the frames of this package
// at the top and without the runtime and test runner frames at the bottom.
func callerStack(err error) errors.StackTrace {
	st := stackTrace(err)
	for len(st) > 0 && isInternal(st[0]) {
		st = st[1:]
	}
	for len(st) > 1 {
		name := function(st[len(st)-1])
		if !strings.HasPrefix(name, "runtime.") && !strings.HasPrefix(name, "testing.") {
			break
		}
		st = st[:len(st)-1]
	}
	return st
}

func isInternal(f errors.Frame) bool {
	if name := function(f); strings.HasPrefix(name, "runtime.") {
		return true
	} else if !strings.HasPrefix(name, thisPackage) {
		return false
	}
	file, _ := location(f)
	return !strings.HasSuffix(file, "_test.go")
}

// function returns the name of the function of f. A frame holds the return
// address, hence the -1.
func function(f errors.Frame) string {
	if fn := runtime.FuncForPC(uintptr(f) - 1); fn != nil {
		return fn.Name()
	}
	return "unknown"
}

func location(f errors.Frame) (string, int) {
	if fn := runtime.FuncForPC(uintptr(f) - 1); fn != nil {
		return fn.FileLine(uintptr(f) - 1)
	}
	return "unknown", 0
}
