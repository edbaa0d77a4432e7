package todo

import (
	"github.com/google/uuid"

	"github.com/kovalchuka569/taskflow/internal/domain/kernel"
	"github.com/kovalchuka569/taskflow/internal/pkg/result"
)

type TodoKind struct{}

func (TodoKind) KindName() string { return "TodoId" }

type ProjectKind struct{}

func (ProjectKind) KindName() string { return "TodoProjectId" }

type AuthorKind struct{}

func (AuthorKind) KindName() string { return "TodoAuthorId" }

type (
	TodoID    = kernel.ID[TodoKind]
	ProjectID = kernel.ID[ProjectKind]
	AuthorID  = kernel.ID[AuthorKind]
)

func NewTodoID() TodoID       { return kernel.New[TodoKind]() }
func NewProjectID() ProjectID { return kernel.New[ProjectKind]() }
func NewAuthorID() AuthorID   { return kernel.New[AuthorKind]() }

func TodoIDFromUUID(v uuid.UUID) result.Of[TodoID]       { return kernel.FromUUID[TodoKind](v) }
func ProjectIDFromUUID(v uuid.UUID) result.Of[ProjectID] { return kernel.FromUUID[ProjectKind](v) }
func AuthorIDFromUUID(v uuid.UUID) result.Of[AuthorID]   { return kernel.FromUUID[AuthorKind](v) }
