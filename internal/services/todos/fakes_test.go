package todos

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	uowtest "github.com/kovalchuka569/taskflow/internal/data/uow/testutil"
	"github.com/kovalchuka569/taskflow/internal/domain/todo"
	"github.com/kovalchuka569/taskflow/internal/platform/logger"
)

// memoryRepo keeps committed snapshots only; every read restores a fresh
// aggregate so uncommitted mutations never leak.
type memoryRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]todo.Snapshot
	uow     *uowtest.InjectedUnitOfWork
	failGet error
	reads   int
	// afterRead runs once the read lock is released, before GetByID returns.
	afterRead func()
}

func (r *memoryRepo) restore(s todo.Snapshot) *todo.Todo {
	return todo.Restore(s).Value()
}

func (r *memoryRepo) GetByID(ctx context.Context, id todo.TodoID) (*todo.Todo, error) {
	t, err := r.read(id)
	if r.afterRead != nil {
		r.afterRead()
	}
	return t, err
}

func (r *memoryRepo) read(id todo.TodoID) (*todo.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.failGet != nil {
		return nil, r.failGet
	}
	s, ok := r.rows[id.UUID()]
	if !ok {
		return nil, nil
	}
	return r.restore(s), nil
}

func (r *memoryRepo) GetByProjectID(ctx context.Context, projectID todo.ProjectID) ([]*todo.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.failGet != nil {
		return nil, r.failGet
	}
	var out []*todo.Todo
	for _, s := range r.rows {
		if s.ProjectID == projectID.UUID() {
			out = append(out, r.restore(s))
		}
	}
	return out, nil
}

func (r *memoryRepo) GetByTodoIDAndProjectID(ctx context.Context, id todo.TodoID, projectID todo.ProjectID) (*todo.Todo, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil || t == nil {
		return t, err
	}
	if t.ProjectID() != projectID {
		return nil, nil
	}
	return t, nil
}

func (r *memoryRepo) Add(ctx context.Context, t *todo.Todo) error {
	s := t.Snapshot()
	r.uow.Register(func() error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.rows[s.ID] = s
		return nil
	})
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, t *todo.Todo) error {
	return r.Add(ctx, t)
}

func (r *memoryRepo) Remove(ctx context.Context, t *todo.Todo) error {
	id := t.ID().UUID()
	r.uow.Register(func() error {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.rows, id)
		return nil
	})
	return nil
}

func (r *memoryRepo) stored(id uuid.UUID) (todo.Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	return s, ok
}

type fakeSession struct {
	*uowtest.InjectedUnitOfWork
	repo *memoryRepo
}

func (s fakeSession) Todos() todo.Repository { return s.repo }

type recordingCache struct {
	mu          sync.Mutex
	items       map[uuid.UUID]TodoResponse
	invalidated []uuid.UUID
}

func (c *recordingCache) Get(_ context.Context, id uuid.UUID) (TodoResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[id]
	return v, ok
}

func (c *recordingCache) Set(_ context.Context, t TodoResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[t.ID] = t
}

func (c *recordingCache) Invalidate(_ context.Context, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	c.invalidated = append(c.invalidated, id)
}

type harness struct {
	svc   Service
	uow   *uowtest.InjectedUnitOfWork
	repo  *memoryRepo
	hooks *uowtest.HooksRecorder
	cache *recordingCache
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	u := &uowtest.InjectedUnitOfWork{}
	repo := &memoryRepo{rows: map[uuid.UUID]todo.Snapshot{}, uow: u}
	hooks := &uowtest.HooksRecorder{}
	c := &recordingCache{items: map[uuid.UUID]TodoResponse{}}
	sessions := func() Session { return fakeSession{InjectedUnitOfWork: u, repo: repo} }
	return &harness{
		svc:   NewService(logger.Nop(), sessions, c, hooks),
		uow:   u,
		repo:  repo,
		hooks: hooks,
		cache: c,
	}
}

// seed creates a todo through the service and resets the call counters.
func (h *harness) seed(t *testing.T, projectID uuid.UUID, title string) uuid.UUID {
	t.Helper()
	r := h.svc.Create(context.Background(), CreateCommand{
		ProjectID: projectID,
		AuthorID:  uuid.New(),
		Title:     title,
	})
	if r.IsFailure() {
		t.Fatalf("seed %q: %v", title, r.Errors())
	}
	h.uow.BeginCalls, h.uow.CommitCalls, h.uow.RollbackCalls = 0, 0, 0
	return r.Value().ID
}
