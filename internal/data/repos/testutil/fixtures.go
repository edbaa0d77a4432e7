package testutil

import (
	"testing"
	"time"

	"github.com/kovalchuka569/taskflow/internal/domain/todo"
)

// NewTodo builds a valid aggregate for projectID, failing the test on
// validation errors.
func NewTodo(tb testing.TB, projectID todo.ProjectID, title string) *todo.Todo {
	tb.Helper()
	due := time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)
	r := todo.Create(projectID, todo.NewAuthorID(), title, "description of "+title, nil, due, due.Add(-24*time.Hour))
	if r.IsFailure() {
		tb.Fatalf("build todo %q: %v", title, r.Errors())
	}
	return r.Value()
}
