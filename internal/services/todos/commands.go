package todos

import (
	"time"

	"github.com/google/uuid"

	"github.com/kovalchuka569/taskflow/internal/domain/todo"
)

// CreateCommand carries raw input for a new todo. A nil Priority means Low.
type CreateCommand struct {
	ProjectID               uuid.UUID
	AuthorID                uuid.UUID
	Title                   string
	Description             string
	Priority                *todo.Priority
	DueDate                 time.Time
	EstimatedCompletionTime time.Time
}

type CreatedTodo struct {
	ID       uuid.UUID `json:"id"`
	PublicID string    `json:"publicId"`
}

type ChangeTitleCommand struct {
	TodoID    uuid.UUID
	ProjectID uuid.UUID
	Title     string
}

type ChangeDescriptionCommand struct {
	TodoID      uuid.UUID
	ProjectID   uuid.UUID
	Description string
}

type ChangeStatusCommand struct {
	TodoID    uuid.UUID
	ProjectID uuid.UUID
	Status    todo.Status
}

type ChangePriorityCommand struct {
	TodoID    uuid.UUID
	ProjectID uuid.UUID
	Priority  todo.Priority
}

type DeleteCommand struct {
	TodoID    uuid.UUID
	ProjectID uuid.UUID
}

// TodoResponse is the read model returned by queries and cached by id.
type TodoResponse struct {
	ID                      uuid.UUID     `json:"id"`
	ProjectID               uuid.UUID     `json:"projectId"`
	AuthorID                uuid.UUID     `json:"authorId"`
	PublicID                string        `json:"publicId"`
	Title                   string        `json:"title"`
	Description             string        `json:"description"`
	Status                  todo.Status   `json:"status"`
	Priority                todo.Priority `json:"priority"`
	DueDate                 time.Time     `json:"dueDate"`
	EstimatedCompletionTime time.Time     `json:"estimatedCompletionTime"`
	CreatedAt               time.Time     `json:"createdAt"`
	ChangedAt               time.Time     `json:"changedAt"`
}

func toResponse(t *todo.Todo) TodoResponse {
	return TodoResponse{
		ID:                      t.ID().UUID(),
		ProjectID:               t.ProjectID().UUID(),
		AuthorID:                t.AuthorID().UUID(),
		PublicID:                t.PublicID().String(),
		Title:                   t.Title().String(),
		Description:             t.Description().String(),
		Status:                  t.Status(),
		Priority:                t.Priority(),
		DueDate:                 t.DueDate(),
		EstimatedCompletionTime: t.EstimatedCompletionTime(),
		CreatedAt:               t.CreatedAt(),
		ChangedAt:               t.ChangedAt(),
	}
}
