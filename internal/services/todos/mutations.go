package todos

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kovalchuka569/taskflow/internal/domain/todo"
	"github.com/kovalchuka569/taskflow/internal/pkg/result"
)

func (s *service) Create(ctx context.Context, cmd CreateCommand) result.Of[CreatedTodo] {
	const op = "todos.Create"
	var created CreatedTodo
	r := s.observe(ctx, op, func(ctx context.Context) result.Result {
		projectID := todo.ProjectIDFromUUID(cmd.ProjectID)
		authorID := todo.AuthorIDFromUUID(cmd.AuthorID)
		if ids := result.Combine(projectID, authorID); ids.IsFailure() {
			return result.Combine(ids, todo.NewTitle(cmd.Title), todo.NewDescription(cmd.Description), todo.PriorityOrDefault(cmd.Priority))
		}

		built := todo.Create(projectID.Value(), authorID.Value(), cmd.Title, cmd.Description, cmd.Priority, cmd.DueDate, cmd.EstimatedCompletionTime)
		if built.IsFailure() {
			return built.Result()
		}
		t := built.Value()

		session := s.sessions()
		if persisted := s.persist(ctx, op, session, func() error { return session.Todos().Add(ctx, t) }); persisted.IsFailure() {
			return persisted
		}
		created = CreatedTodo{ID: t.ID().UUID(), PublicID: t.PublicID().String()}
		s.log.Info("todo created", "todo_id", created.ID, "project_id", cmd.ProjectID, "author_id", cmd.AuthorID)
		return result.Success()
	}, attribute.String("todo.project_id", cmd.ProjectID.String()))
	if r.IsFailure() {
		return result.Propagate[CreatedTodo](r)
	}
	return result.Ok(created)
}

func (s *service) ChangeTitle(ctx context.Context, cmd ChangeTitleCommand) result.Result {
	title := todo.NewTitle(cmd.Title)
	return s.mutate(ctx, "todos.ChangeTitle", cmd.TodoID, cmd.ProjectID, title, func(t *todo.Todo) (bool, result.Result) {
		if t.Title() == title.Value() {
			return false, result.Success()
		}
		return true, t.ChangeTitle(title.Value())
	})
}

func (s *service) ChangeDescription(ctx context.Context, cmd ChangeDescriptionCommand) result.Result {
	description := todo.NewDescription(cmd.Description)
	return s.mutate(ctx, "todos.ChangeDescription", cmd.TodoID, cmd.ProjectID, description, func(t *todo.Todo) (bool, result.Result) {
		if t.Description() == description.Value() {
			return false, result.Success()
		}
		return true, t.ChangeDescription(description.Value())
	})
}

func (s *service) ChangeStatus(ctx context.Context, cmd ChangeStatusCommand) result.Result {
	return s.mutate(ctx, "todos.ChangeStatus", cmd.TodoID, cmd.ProjectID, nil, func(t *todo.Todo) (bool, result.Result) {
		if t.Status() == cmd.Status {
			return false, result.Success()
		}
		return true, t.ChangeStatus(cmd.Status)
	})
}

func (s *service) ChangePriority(ctx context.Context, cmd ChangePriorityCommand) result.Result {
	return s.mutate(ctx, "todos.ChangePriority", cmd.TodoID, cmd.ProjectID, nil, func(t *todo.Todo) (bool, result.Result) {
		if t.Priority() == cmd.Priority {
			return false, result.Success()
		}
		return true, t.ChangePriority(cmd.Priority)
	})
}

// mutate is the shared command pipeline: validate ids and input together,
// load, short-circuit when nothing changes, apply, persist, invalidate.
// change reports whether the todo differs from the requested state.
func (s *service) mutate(
	ctx context.Context,
	op string,
	rawTodoID, rawProjectID uuid.UUID,
	input result.Outcome,
	change func(t *todo.Todo) (bool, result.Result),
) result.Result {
	return s.instrument(ctx, op, func(ctx context.Context) (result.Result, bool) {
		todoID := todo.TodoIDFromUUID(rawTodoID)
		projectID := todo.ProjectIDFromUUID(rawProjectID)
		if validation := result.Combine(todoID, projectID, input); validation.IsFailure() {
			return validation, false
		}

		session := s.sessions()
		t, loaded := s.load(ctx, op, session, todoID.Value(), projectID.Value())
		if loaded.IsFailure() {
			return loaded, false
		}

		changed, applied := change(t)
		if applied.IsFailure() || !changed {
			return applied, !changed
		}

		if persisted := s.persist(ctx, op, session, func() error { return session.Todos().Update(ctx, t) }); persisted.IsFailure() {
			return persisted, false
		}
		s.cache.Invalidate(ctx, t.ID().UUID())
		return result.Success(), false
	}, todoAttrs(rawTodoID, rawProjectID)...)
}

func (s *service) Delete(ctx context.Context, cmd DeleteCommand) result.Result {
	const op = "todos.Delete"
	return s.observe(ctx, op, func(ctx context.Context) result.Result {
		todoID := todo.TodoIDFromUUID(cmd.TodoID)
		projectID := todo.ProjectIDFromUUID(cmd.ProjectID)
		if validation := result.Combine(todoID, projectID); validation.IsFailure() {
			return validation
		}

		session := s.sessions()
		t, loaded := s.load(ctx, op, session, todoID.Value(), projectID.Value())
		if loaded.IsFailure() {
			return loaded
		}
		if persisted := s.persist(ctx, op, session, func() error { return session.Todos().Remove(ctx, t) }); persisted.IsFailure() {
			return persisted
		}
		s.cache.Invalidate(ctx, t.ID().UUID())
		s.log.Info("todo deleted", "todo_id", cmd.TodoID, "project_id", cmd.ProjectID)
		return result.Success()
	}, todoAttrs(cmd.TodoID, cmd.ProjectID)...)
}
