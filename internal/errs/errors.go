// Package errs holds the error types shared by the introspection core and the CLI.
//
// Data access failures are wrapped into *Error with a Kind so callers can react to
// the category without importing driver packages:
//
//	if errs.IsDataAccess(err) {
//	    // abort this table
//	}
//
// Unmapped column types get their own types so a caller can collect every one of
// them across a schema before failing.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorises an error.
type Kind int

const (
	KindUnknown             Kind = iota
	KindNotFound                 // table or object does not exist
	KindConnectionFailed         // cannot reach or log into the database
	KindPermissionDenied         // metadata views not readable
	KindQueryFailed              // metadata query failed
	KindTimeout                  // context deadline / cancellation
	KindInvalidInput             // bad arguments or configuration
	KindMalformedConstraint      // FK row missing required fields
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConnectionFailed:
		return "connection_failed"
	case KindPermissionDenied:
		return "permission_denied"
	case KindQueryFailed:
		return "query_failed"
	case KindTimeout:
		return "timeout"
	case KindInvalidInput:
		return "invalid_input"
	case KindMalformedConstraint:
		return "malformed_constraint"
	default:
		return "unknown"
	}
}

// Error is the categorised error returned by the database and schema packages.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an *Error without a cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error around cause. If cause already carries a kind other
// than KindUnknown, that kind is kept so classification done by the driver
// layer survives re-wrapping.
func Wrap(kind Kind, msg string, cause error) *Error {
	if k := KindOf(cause); k != KindUnknown {
		kind = k
	}
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// KindOf extracts the Kind of the first *Error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsDataAccess reports whether err is a failed metadata query of any sort.
func IsDataAccess(err error) bool {
	switch KindOf(err) {
	case KindConnectionFailed, KindPermissionDenied, KindQueryFailed, KindTimeout:
		return true
	}
	return false
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsInvalidInput(err error) bool {
	return KindOf(err) == KindInvalidInput
}

func IsMalformedConstraint(err error) bool {
	return KindOf(err) == KindMalformedConstraint
}

// UnmappedTypeError reports a native column type with no entry in the type map.
type UnmappedTypeError struct {
	Type   string
	Table  string
	Column string
}

func (e *UnmappedTypeError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("type %q of column %s.%s is not mapped", e.Type, e.Table, e.Column)
	}
	return fmt.Sprintf("type %q is not mapped", e.Type)
}

// UnmappedTypesError collects every UnmappedTypeError found during a run.
type UnmappedTypesError struct {
	Errors []*UnmappedTypeError
}

func (e *UnmappedTypesError) Error() string {
	return fmt.Sprintf("%d unmapped column types: %s", len(e.Errors), strings.Join(e.Types(), ", "))
}

// Types returns the distinct unmapped type names in first-seen order.
func (e *UnmappedTypesError) Types() []string {
	seen := make(map[string]bool, len(e.Errors))
	var out []string
	for _, u := range e.Errors {
		if !seen[u.Type] {
			seen[u.Type] = true
			out = append(out, u.Type)
		}
	}
	return out
}

// Unwrap exposes the individual errors to errors.As.
func (e *UnmappedTypesError) Unwrap() []error {
	out := make([]error, len(e.Errors))
	for i, u := range e.Errors {
		out[i] = u
	}
	return out
}
