package devices

import "strings"

// ErrorSet defines a list of one or more errors and is itself an error.
type ErrorSet []error

// Len returns the number of errors in the set.
func (e ErrorSet) Len() int {
	return len(e)
}

// Append adds the given errors to the set. Nil values are ignored.
func (e *ErrorSet) Append(args ...error) {
	for _, err := range args {
		if err != nil {
			*e = append(*e, err)
		}
	}
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e ErrorSet) Unwrap() []error {
	return e
}

func (e ErrorSet) Error() string {
	var sb strings.Builder
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}
