// Package apperr defines the failure kinds surfaced to callers of the
// catalog services and classifies raw store errors into them.
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "input_conflict"
	KindInvalid      Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindInternal     Kind = "internal"
)

// InternalMessage is the only text a caller sees for an internal failure.
const InternalMessage = "Unexpected server error, check server logs"

// Error is a classified failure. Message is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports a lookup that matched no row. The message should name the
// offending term.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a write rejected by an integrity constraint; detail is
// the store-provided description.
func Conflict(detail string, err error) *Error {
	return &Error{Kind: KindConflict, Message: detail, Err: err}
}

// Invalid reports malformed caller input.
func Invalid(msg string) *Error {
	return &Error{Kind: KindInvalid, Message: msg}
}

// Unauthorized reports missing or rejected credentials.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Internal hides err behind the generic message. Callers log err themselves.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: InternalMessage, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// UniqueViolation reports whether err is a uniqueness-constraint violation
// and returns the store's description of it.
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.TrimSpace(pgErr.Code) == "23505" {
		if pgErr.Detail != "" {
			return pgErr.Detail, true
		}
		return pgErr.Message, true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return sqliteErr.Error(), true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "duplicated key not allowed", true
	}
	return "", false
}
