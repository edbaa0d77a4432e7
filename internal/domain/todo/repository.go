package todo

import "context"

// Repository is the persistence contract for the Todo aggregate.
//
// Lookups return (nil, nil) when no row matches. Add, Update and Remove only
// register pending changes; nothing is written until the surrounding unit of
// work commits.
type Repository interface {
	GetByID(ctx context.Context, id TodoID) (*Todo, error)
	GetByProjectID(ctx context.Context, projectID ProjectID) ([]*Todo, error)
	// GetByTodoIDAndProjectID returns nil when the todo exists under another
	// project. Every mutating command loads through it.
	GetByTodoIDAndProjectID(ctx context.Context, id TodoID, projectID ProjectID) (*Todo, error)
	Add(ctx context.Context, t *Todo) error
	Update(ctx context.Context, t *Todo) error
	Remove(ctx context.Context, t *Todo) error
}
