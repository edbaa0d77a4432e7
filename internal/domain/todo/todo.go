// Package todo is the Todo aggregate: its value objects, lifecycle rules and
// the repository contract it is persisted through.
package todo

import (
	"time"

	"github.com/google/uuid"

	"github.com/kovalchuka569/taskflow/internal/pkg/result"
)

// now is the aggregate clock. Tests replace it to get deterministic stamps.
var now = func() time.Time { return time.Now().UTC() }

// Todo is the aggregate root. Fields are private; state only changes through
// the Change* methods, which stamp ChangedAt when they accept a mutation.
type Todo struct {
	id                      TodoID
	projectID               ProjectID
	authorID                AuthorID
	publicID                PublicID
	title                   Title
	description             Description
	status                  Status
	priority                Priority
	dueDate                 time.Time
	estimatedCompletionTime time.Time
	createdAt               time.Time
	changedAt               time.Time
}

// Create validates title and description together and builds a new todo in
// the New status. A nil priority defaults to Low.
func Create(
	projectID ProjectID,
	authorID AuthorID,
	title string,
	description string,
	priority *Priority,
	dueDate time.Time,
	estimatedCompletionTime time.Time,
) result.Of[*Todo] {
	titleResult := NewTitle(title)
	descriptionResult := NewDescription(description)
	priorityResult := PriorityOrDefault(priority)

	if combined := result.Combine(titleResult, descriptionResult, priorityResult); combined.IsFailure() {
		return result.Propagate[*Todo](combined)
	}

	createdAt := now()
	return result.Ok(&Todo{
		id:                      NewTodoID(),
		projectID:               projectID,
		authorID:                authorID,
		publicID:                GeneratePublicID(),
		title:                   titleResult.Value(),
		description:             descriptionResult.Value(),
		status:                  StatusNew,
		priority:                priorityResult.Value(),
		dueDate:                 dueDate,
		estimatedCompletionTime: estimatedCompletionTime,
		createdAt:               createdAt,
		changedAt:               createdAt,
	})
}

// PriorityOrDefault validates an optional priority. nil means Low.
func PriorityOrDefault(p *Priority) result.Of[Priority] {
	if p == nil {
		return result.Ok(PriorityLow)
	}
	if !p.IsDefined() {
		return result.Fail[Priority](ErrPriorityIsInvalid)
	}
	return result.Ok(*p)
}

func (t *Todo) ID() TodoID                         { return t.id }
func (t *Todo) ProjectID() ProjectID               { return t.projectID }
func (t *Todo) AuthorID() AuthorID                 { return t.authorID }
func (t *Todo) PublicID() PublicID                 { return t.publicID }
func (t *Todo) Title() Title                       { return t.title }
func (t *Todo) Description() Description           { return t.description }
func (t *Todo) Status() Status                     { return t.status }
func (t *Todo) Priority() Priority                 { return t.priority }
func (t *Todo) DueDate() time.Time                 { return t.dueDate }
func (t *Todo) EstimatedCompletionTime() time.Time { return t.estimatedCompletionTime }
func (t *Todo) CreatedAt() time.Time               { return t.createdAt }
func (t *Todo) ChangedAt() time.Time               { return t.changedAt }

// ChangeTitle is only allowed while the todo is New. Setting the current
// title is a successful no-op in any status.
func (t *Todo) ChangeTitle(title Title) result.Result {
	if t.title == title {
		return result.Success()
	}
	if t.status != StatusNew {
		return result.Failure(ErrTitleCanOnlyBeChangedInNewStatus)
	}
	t.title = title
	t.touch()
	return result.Success()
}

func (t *Todo) ChangeDescription(description Description) result.Result {
	if t.description == description {
		return result.Success()
	}
	t.description = description
	t.touch()
	return result.Success()
}

func (t *Todo) ChangeStatus(status Status) result.Result {
	if t.status == status {
		return result.Success()
	}
	if !status.IsDefined() {
		return result.Failure(ErrStatusIsInvalid)
	}
	t.status = status
	t.touch()
	return result.Success()
}

func (t *Todo) ChangePriority(priority Priority) result.Result {
	if t.priority == priority {
		return result.Success()
	}
	if !priority.IsDefined() {
		return result.Failure(ErrPriorityIsInvalid)
	}
	t.priority = priority
	t.touch()
	return result.Success()
}

func (t *Todo) touch() {
	t.changedAt = now()
}

// Snapshot is the flat, primitive form of a todo used by persistence.
type Snapshot struct {
	ID                      uuid.UUID
	ProjectID               uuid.UUID
	AuthorID                uuid.UUID
	PublicID                string
	Title                   string
	Description             string
	Status                  Status
	Priority                Priority
	DueDate                 time.Time
	EstimatedCompletionTime time.Time
	CreatedAt               time.Time
	ChangedAt               time.Time
}

func (t *Todo) Snapshot() Snapshot {
	return Snapshot{
		ID:                      t.id.UUID(),
		ProjectID:               t.projectID.UUID(),
		AuthorID:                t.authorID.UUID(),
		PublicID:                t.publicID.String(),
		Title:                   t.title.String(),
		Description:             t.description.String(),
		Status:                  t.status,
		Priority:                t.priority,
		DueDate:                 t.dueDate,
		EstimatedCompletionTime: t.estimatedCompletionTime,
		CreatedAt:               t.createdAt,
		ChangedAt:               t.changedAt,
	}
}

// Restore rebuilds a persisted todo, re-validating every field. All
// validation errors are reported together.
func Restore(s Snapshot) result.Of[*Todo] {
	idResult := TodoIDFromUUID(s.ID)
	projectResult := ProjectIDFromUUID(s.ProjectID)
	authorResult := AuthorIDFromUUID(s.AuthorID)
	publicIDResult := PublicIDFromString(s.PublicID)
	titleResult := NewTitle(s.Title)
	descriptionResult := NewDescription(s.Description)

	combined := result.Combine(idResult, projectResult, authorResult, publicIDResult, titleResult, descriptionResult)
	if !s.Status.IsDefined() {
		combined = result.Combine(combined, result.Failure(ErrStatusIsInvalid))
	}
	if !s.Priority.IsDefined() {
		combined = result.Combine(combined, result.Failure(ErrPriorityIsInvalid))
	}
	if combined.IsFailure() {
		return result.Propagate[*Todo](combined)
	}

	return result.Ok(&Todo{
		id:                      idResult.Value(),
		projectID:               projectResult.Value(),
		authorID:                authorResult.Value(),
		publicID:                publicIDResult.Value(),
		title:                   titleResult.Value(),
		description:             descriptionResult.Value(),
		status:                  s.Status,
		priority:                s.Priority,
		dueDate:                 s.DueDate,
		estimatedCompletionTime: s.EstimatedCompletionTime,
		createdAt:               s.CreatedAt.UTC(),
		changedAt:               s.ChangedAt.UTC(),
	})
}
