package types

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorTypeUsedError is the panic value raised when a structural query
// reaches an error node. Message is the diagnostic supplied at creation.
type ErrorTypeUsedError struct {
	Message string
}

func (e *ErrorTypeUsedError) Error() string {
	return fmt.Sprintf("types: error type used: %s", e.Message)
}

// ErrorClass creates a placeholder for a type that could not be resolved.
// Name is what the caller tried to resolve; it is never printed.
func (in *Interner) ErrorClass(message, name string) TypeID {
	slot := appendSlot(&in.errs, ErrorInfo{Message: message, Name: name})
	return in.internRaw(Type{Kind: KindError, Payload: slot})
}

// ErrorInfo returns the diagnostic of an error node.
func (in *Interner) ErrorInfo(id TypeID) (*ErrorInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindError || tt.Payload == 0 || int(tt.Payload) >= len(in.errs) {
		return nil, false
	}
	return &in.errs[tt.Payload], true
}

// IsError reports whether id is an error node or is built from one.
// It is the only query that accepts error nodes.
func (in *Interner) IsError(id TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindError:
		return true
	case KindArray, KindWildcard:
		return in.IsError(tt.Elem)
	case KindNarrowed:
		if in.IsError(tt.Elem) {
			return true
		}
		for _, a := range in.args(tt) {
			if in.IsError(a) {
				return true
			}
		}
	}
	return false
}

// RecoverErrorType converts an ErrorTypeUsedError panic into an error and
// re-panics anything else. Use it as `defer types.RecoverErrorType(&err)`.
func RecoverErrorType(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if used, ok := r.(*ErrorTypeUsedError); ok {
		*errp = errors.WithStack(used)
		return
	}
	panic(r)
}

func (in *Interner) mustNotBeError(tt Type) {
	if tt.Kind != KindError {
		return
	}
	msg := "unknown"
	if int(tt.Payload) < len(in.errs) {
		msg = in.errs[tt.Payload].Message
	}
	panic(&ErrorTypeUsedError{Message: msg})
}
