// Package apperr defines the service error taxonomy and the mapping from
// low-level store errors into it. Engines and handlers only ever see these
// kinds; vendor error codes stop at this boundary.
package apperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind int

const (
	// Conflict marks a duplicate unique key on write (EAN, category name).
	Conflict Kind = iota
	// NotFound marks an absent entity on lookup/update/delete.
	NotFound
	// Internal marks connectivity or unexpected store failures.
	Internal
)

// Error carries a taxonomy kind and a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Status returns the stable wire status for the kind.
func (e *Error) Status() int {
	switch e.Kind {
	case Conflict:
		return 409
	case NotFound:
		return 404
	default:
		return 500
	}
}

func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: Conflict, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

func Internalf(format string, args ...interface{}) *Error {
	return &Error{Kind: Internal, Message: fmt.Sprintf(format, args...)}
}

// FromStore converts a gorm/driver error into the taxonomy. Already-typed
// errors pass through unchanged.
func FromStore(err error) error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundf("Record not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflictf("Duplicate entry")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return Conflictf("Duplicate entry for %s", pgErr.ConstraintName)
	}

	return Internalf("%s", err.Error())
}

// StatusOf resolves the wire status for any error, defaulting to 500.
func StatusOf(err error) int {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Status()
	}
	return 500
}

// IsKind reports whether err is a taxonomy error of the given kind.
func IsKind(err error, kind Kind) bool {
	var typed *Error
	return errors.As(err, &typed) && typed.Kind == kind
}
