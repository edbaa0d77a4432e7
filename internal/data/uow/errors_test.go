package uow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"record not found", gorm.ErrRecordNotFound, CodeNotFound},
		{"no rows", fmt.Errorf("update: %w", ErrNoRowsAffected), CodeNotFound},
		{"canceled", context.Canceled, CodeRetryable},
		{"deadline", context.DeadlineExceeded, CodeRetryable},
		{"translated duplicate", gorm.ErrDuplicatedKey, CodeConflict},
		{"unique violation", &pgconn.PgError{Code: "23505"}, CodeConflict},
		{"fk violation", &pgconn.PgError{Code: "23503"}, CodePreconditionFailed},
		{"serialization", &pgconn.PgError{Code: "40001"}, CodeRetryable},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, CodeRetryable},
		{"sqlite unique", errors.New("UNIQUE constraint failed: todos.public_id"), CodeConflict},
		{"sqlite locked", errors.New("database is locked"), CodeRetryable},
		{"other", errors.New("disk on fire"), CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError("op", tc.err)
			if CodeOf(got) != tc.want {
				t.Fatalf("code: want=%s got=%s", tc.want, CodeOf(got))
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("cause lost: %v", got)
			}
		})
	}
}

func TestMapErrorPassesThroughClassified(t *testing.T) {
	classified := NewError(CodeConflict, "first", "already classified", nil)
	if got := MapError("second", classified); got != classified {
		t.Fatalf("classified error should pass through unchanged")
	}
	if MapError("op", nil) != nil {
		t.Fatalf("nil in, nil out")
	}
}

func TestErrorString(t *testing.T) {
	err := NewError(CodeNotFound, "todo.update", "missing", nil)
	if err.Error() != "todo.update: missing (not_found)" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
