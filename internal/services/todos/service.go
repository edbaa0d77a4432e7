// Package todos holds the todo command and query handlers. Every command
// parses its raw input into value objects, loads the aggregate, applies the
// domain change and persists it through a unit of work it opens for itself.
package todos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kovalchuka569/taskflow/internal/data/uow"
	"github.com/kovalchuka569/taskflow/internal/domain/kernel"
	"github.com/kovalchuka569/taskflow/internal/domain/todo"
	"github.com/kovalchuka569/taskflow/internal/pkg/result"
	"github.com/kovalchuka569/taskflow/internal/platform/ctxutil"
	"github.com/kovalchuka569/taskflow/internal/platform/logger"
)

type Service interface {
	Create(ctx context.Context, cmd CreateCommand) result.Of[CreatedTodo]
	Get(ctx context.Context, todoID uuid.UUID) result.Of[TodoResponse]
	ListByProject(ctx context.Context, projectID uuid.UUID) result.Of[[]TodoResponse]
	ChangeTitle(ctx context.Context, cmd ChangeTitleCommand) result.Result
	ChangeDescription(ctx context.Context, cmd ChangeDescriptionCommand) result.Result
	ChangeStatus(ctx context.Context, cmd ChangeStatusCommand) result.Result
	ChangePriority(ctx context.Context, cmd ChangePriorityCommand) result.Result
	Delete(ctx context.Context, cmd DeleteCommand) result.Result
}

// Session is one unit of work with the todo repository bound to it.
type Session interface {
	kernel.UnitOfWork
	Todos() todo.Repository
}

// SessionFactory opens a fresh Session per command or query.
type SessionFactory func() Session

type service struct {
	log      *logger.Logger
	sessions SessionFactory
	cache    ProjectionCache
	hooks    uow.Hooks
	tracer   trace.Tracer
}

// NewService wires the handlers. A nil cache or hooks disables them.
func NewService(baseLog *logger.Logger, sessions SessionFactory, cache ProjectionCache, hooks uow.Hooks) Service {
	if cache == nil {
		cache = NoopProjectionCache()
	}
	if hooks == nil {
		hooks = uow.NoopHooks()
	}
	return &service{
		log:      baseLog.With("service", "TodoService"),
		sessions: sessions,
		cache:    cache,
		hooks:    hooks,
		tracer:   otel.Tracer("github.com/kovalchuka569/taskflow/internal/services/todos"),
	}
}

// observe runs fn inside a span and reports its outcome to the hooks.
func (s *service) observe(ctx context.Context, op string, fn func(ctx context.Context) result.Result, attrs ...attribute.KeyValue) result.Result {
	return s.instrument(ctx, op, func(ctx context.Context) (result.Result, bool) {
		return fn(ctx), false
	}, attrs...)
}

// instrument is observe for commands that may finish without changing
// anything; fn reports that through its second return value.
func (s *service) instrument(ctx context.Context, op string, fn func(ctx context.Context) (result.Result, bool), attrs ...attribute.KeyValue) result.Result {
	start := time.Now()
	attrs = append(attrs, ctxutil.SpanAttributes(ctx)...)
	ctx, span := s.tracer.Start(ctx, op, trace.WithAttributes(attrs...))
	defer span.End()

	r, unchanged := fn(ctx)

	status := outcomeStatus(r, unchanged)
	span.SetAttributes(attribute.String("todos.outcome", status))
	if r.IsFailure() {
		span.SetStatus(codes.Error, r.Errors()[0].Code)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	s.hooks.ObserveOperation(op, status, time.Since(start))
	return r
}

func outcomeStatus(r result.Result, unchanged bool) string {
	if r.IsSuccess() {
		if unchanged {
			return uow.StatusNoop
		}
		return uow.StatusSuccess
	}
	for _, e := range r.Errors() {
		if e == result.DatabaseUnexpectedError {
			return uow.StatusError
		}
	}
	return uow.StatusFailure
}

// persist opens the transaction, registers the change and commits. Any
// failure rolls back and surfaces as Database.UnexpectedError; the cause is
// only logged.
func (s *service) persist(ctx context.Context, op string, session Session, register func() error) result.Result {
	if err := session.BeginTransaction(ctx); err != nil {
		return s.abort(ctx, op, session, err)
	}
	if err := register(); err != nil {
		return s.abort(ctx, op, session, err)
	}
	if _, err := session.Commit(ctx); err != nil {
		return s.abort(ctx, op, session, err)
	}
	return result.Success()
}

func (s *service) abort(ctx context.Context, op string, session Session, cause error) result.Result {
	if err := session.Rollback(context.WithoutCancel(ctx)); err != nil {
		s.log.Warn("rollback failed", "op", op, "error", err)
	}
	s.hooks.IncRollback(op)
	return s.unexpected(ctx, op, cause)
}

func (s *service) unexpected(ctx context.Context, op string, cause error) result.Result {
	mapped := uow.MapError(op, cause)
	fields := append([]interface{}{"op", op, "code", uow.CodeOf(mapped), "error", mapped}, ctxutil.LogFields(ctx)...)
	s.log.Error("persistence failure", fields...)
	return result.Failure(result.DatabaseUnexpectedError)
}

// load fetches a todo scoped to its project. A todo under another project
// is reported as not found.
func (s *service) load(ctx context.Context, op string, session Session, id todo.TodoID, projectID todo.ProjectID) (*todo.Todo, result.Result) {
	t, err := session.Todos().GetByTodoIDAndProjectID(ctx, id, projectID)
	if err != nil {
		return nil, s.unexpected(ctx, op, err)
	}
	if t == nil {
		return nil, result.Failure(todo.ErrNotFound)
	}
	return t, result.Success()
}

func todoAttrs(todoID, projectID uuid.UUID) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("todo.id", todoID.String())}
	if projectID != uuid.Nil {
		attrs = append(attrs, attribute.String("todo.project_id", projectID.String()))
	}
	return attrs
}
