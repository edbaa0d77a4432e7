package uow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrorCode classifies persistence failures.
type ErrorCode string

const (
	CodeNotFound           ErrorCode = "not_found"
	CodeConflict           ErrorCode = "conflict"
	CodePreconditionFailed ErrorCode = "precondition_failed"
	CodeRetryable          ErrorCode = "retryable"
	CodeInternal           ErrorCode = "internal"
)

// ErrNoRowsAffected is returned by a change that expected to touch a row and
// found none.
var ErrNoRowsAffected = errors.New("no rows affected")

// Error is the classified persistence error. Callers above the service
// layer never see it; it is logged and replaced by Database.UnexpectedError.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates err with a code, keeping it reachable through errors.Is.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// CodeOf extracts the code of a classified error, or "" for anything else.
func CodeOf(err error) ErrorCode {
	var uowErr *Error
	if !errors.As(err, &uowErr) {
		return ""
	}
	return uowErr.Code
}

func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// MapError classifies driver, gorm and context failures. Already classified
// errors pass through unchanged.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var uowErr *Error
	if errors.As(err, &uowErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, ErrNoRowsAffected):
		return Wrap(CodeNotFound, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Wrap(CodeRetryable, op, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(CodeConflict, op, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Wrap(CodePreconditionFailed, op, err)
	case errors.Is(err, sql.ErrTxDone):
		return Wrap(CodeInternal, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return Wrap(CodeConflict, op, err) // unique_violation
		case "23503":
			return Wrap(CodePreconditionFailed, op, err) // foreign_key_violation
		case "40001", "40P01", "55P03":
			return Wrap(CodeRetryable, op, err) // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "unique constraint failed"),
		strings.Contains(msg, "already exists"):
		return Wrap(CodeConflict, op, err)
	case strings.Contains(msg, "foreign key constraint failed"):
		return Wrap(CodePreconditionFailed, op, err)
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "timeout"):
		return Wrap(CodeRetryable, op, err)
	default:
		return Wrap(CodeInternal, op, err)
	}
}
