package woql

import (
	"errors"
	"fmt"
)

// BuildError records a malformed builder call. Builder methods never fail;
// they append a BuildError and produce a best-effort node.
type BuildError struct {
	Op      string
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (q *Query) addError(op, format string, args ...any) {
	q.errs = append(q.errs, &BuildError{Op: op, Message: fmt.Sprintf(format, args...)})
}

// Errors returns the accumulated build errors in call order.
func (q *Query) Errors() []*BuildError {
	out := make([]*BuildError, len(q.errs))
	copy(out, q.errs)
	return out
}

// HasErrors reports whether any builder call was malformed.
func (q *Query) HasErrors() bool {
	return len(q.errs) > 0
}

// Err joins all accumulated errors, or returns nil.
func (q *Query) Err() error {
	if len(q.errs) == 0 {
		return nil
	}
	errs := make([]error, len(q.errs))
	for i, e := range q.errs {
		errs[i] = e
	}
	return errors.Join(errs...)
}
