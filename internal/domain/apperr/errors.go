package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Kind string

const (
	KindNotAuthenticated     Kind = "not_authenticated"
	KindInsufficientRole     Kind = "insufficient_role"
	KindNotFound             Kind = "not_found"
	KindReferentialViolation Kind = "referential_violation"
	KindInvalidInput         Kind = "invalid_input"
	KindUpstreamFailure      Kind = "upstream_failure"
)

// Error carries one of the taxonomy kinds through the core so that the HTTP
// layer can pick a status without string matching.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg != "" {
		return e.Msg + ": " + e.Err.Error()
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on kind: errors.Is(err, apperr.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrNotAuthenticated     = &Error{Kind: KindNotAuthenticated}
	ErrInsufficientRole     = &Error{Kind: KindInsufficientRole}
	ErrNotFound             = &Error{Kind: KindNotFound}
	ErrReferentialViolation = &Error{Kind: KindReferentialViolation}
	ErrInvalidInput         = &Error{Kind: KindInvalidInput}
	ErrUpstreamFailure      = &Error{Kind: KindUpstreamFailure}
)

func NotAuthenticated(msg string) error {
	return &Error{Kind: KindNotAuthenticated, Msg: msg}
}

func InsufficientRole(msg string) error {
	return &Error{Kind: KindInsufficientRole, Msg: msg}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Referential(format string, args ...any) error {
	return &Error{Kind: KindReferentialViolation, Msg: fmt.Sprintf(format, args...)}
}

func Invalid(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func Upstream(err error, format string, args ...any) error {
	return &Error{Kind: KindUpstreamFailure, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the taxonomy kind of err. Anything that did not come
// through this package is treated as an upstream failure.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstreamFailure
}

// FromDB maps a gorm error to the taxonomy. Errors already classified pass
// through unchanged.
func FromDB(err error, what string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("%s not found", what)
	}
	return Upstream(err, "%s", what)
}
