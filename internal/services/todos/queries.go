package todos

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kovalchuka569/taskflow/internal/domain/todo"
	"github.com/kovalchuka569/taskflow/internal/pkg/result"
)

// Get returns one todo by id. Queries never open a transaction.
func (s *service) Get(ctx context.Context, rawTodoID uuid.UUID) result.Of[TodoResponse] {
	const op = "todos.Get"
	var out TodoResponse
	r := s.observe(ctx, op, func(ctx context.Context) result.Result {
		todoID := todo.TodoIDFromUUID(rawTodoID)
		if todoID.IsFailure() {
			return todoID.Result()
		}
		if cached, ok := s.cache.Get(ctx, rawTodoID); ok {
			out = cached
			return result.Success()
		}

		t, err := s.sessions().Todos().GetByID(ctx, todoID.Value())
		if err != nil {
			return s.unexpected(ctx, op, err)
		}
		if t == nil {
			return result.Failure(todo.ErrNotFound)
		}
		out = toResponse(t)
		s.cache.Set(ctx, out)
		return result.Success()
	}, attribute.String("todo.id", rawTodoID.String()))
	if r.IsFailure() {
		return result.Propagate[TodoResponse](r)
	}
	return result.Ok(out)
}

// ListByProject returns every todo of a project, oldest first. An unknown
// project yields an empty list.
func (s *service) ListByProject(ctx context.Context, rawProjectID uuid.UUID) result.Of[[]TodoResponse] {
	const op = "todos.ListByProject"
	out := []TodoResponse{}
	r := s.observe(ctx, op, func(ctx context.Context) result.Result {
		projectID := todo.ProjectIDFromUUID(rawProjectID)
		if projectID.IsFailure() {
			return projectID.Result()
		}
		items, err := s.sessions().Todos().GetByProjectID(ctx, projectID.Value())
		if err != nil {
			return s.unexpected(ctx, op, err)
		}
		for _, t := range items {
			out = append(out, toResponse(t))
		}
		return result.Success()
	}, attribute.String("todo.project_id", rawProjectID.String()))
	if r.IsFailure() {
		return result.Propagate[[]TodoResponse](r)
	}
	return result.Ok(out)
}
