package model

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code. Codes let callers branch on the
// failure category without matching message text, and survive wrapping.
type Code string

// Error codes raised by schema and graph operations.
const (
	// CodeCardinality: a relation's upper bound would be violated, or a
	// to-one/to-many operation was used on the wrong relation shape.
	CodeCardinality Code = "CARDINALITY"

	// CodeTypeMismatch: the value's kind is not a subtype of the relation's
	// declared target kind, or an attribute value has the wrong type.
	CodeTypeMismatch Code = "TYPE_MISMATCH"

	// CodeReadOnlyRelation: a write was attempted on a derived union.
	CodeReadOnlyRelation Code = "READ_ONLY_RELATION"

	// CodeNotFound: the value (or element) to remove is not present.
	CodeNotFound Code = "NOT_FOUND"

	// CodeOwnershipCycle: the mutation would make an element its own
	// direct or transitive composite owner.
	CodeOwnershipCycle Code = "OWNERSHIP_CYCLE"

	// Schema lookup failures.
	CodeUnknownKind      Code = "UNKNOWN_KIND"
	CodeUnknownRelation  Code = "UNKNOWN_RELATION"
	CodeUnknownAttribute Code = "UNKNOWN_ATTRIBUTE"

	// CodeDuplicate: a kind, relation, attribute, or element id is
	// registered twice.
	CodeDuplicate Code = "DUPLICATE"

	// CodeInvalidValue: an enum attribute was assigned a literal outside
	// its declared value set.
	CodeInvalidValue Code = "INVALID_VALUE"

	// CodeInconsistent is returned by [Repository.Validate] when the graph
	// violates a structural invariant (asymmetric link, broken tree).
	CodeInconsistent Code = "INCONSISTENT"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error { return e.Cause }

// errf creates a new Error with the given code and formatted message.
func errf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err carries the given error code anywhere in its
// chain.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// ErrCode extracts the error code from err, or "" if err is not an *Error.
func ErrCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
