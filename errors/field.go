package errors

import "fmt"

// Field marks err as a problem with the named field. Nested fields are
// joined with dots and list elements use their index, for example
// Patch.MaxBatchSize or Holders.3. The description is formatted with args
// when any are given. A nil err gives nil.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{field: name, desc: description, parent: withStack(err)}
}

// AppendField adds the error of the named field to errs.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

// FieldErrors returns the errors reported for the named field, in the order
// they were added.
func FieldErrors(err error, name string) []error {
	var found []error
	walk(err, func(cur error) bool {
		if f, ok := cur.(*fieldError); ok && f.field == name {
			found = append(found, cur)
			return false
		}
		return true
	})
	return found
}

type fieldError struct {
	field  string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	msg := e.parent.Error()
	if e.desc != "" {
		msg = e.desc + ": " + msg
	}
	return fmt.Sprintf("field %q: %s", e.field, msg)
}

func (e *fieldError) Cause() error {
	return e.parent
}
