package todos

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/kovalchuka569/taskflow/internal/data/cache"
	"github.com/kovalchuka569/taskflow/internal/domain/todo"
	"github.com/kovalchuka569/taskflow/internal/observability"
	"github.com/kovalchuka569/taskflow/internal/platform/logger"
)

// tombstoneStore mirrors the Redis store: Add is SETNX, Invalidate writes a
// tombstone that reads as a miss. Tombstones never expire here.
type tombstoneStore struct {
	mu    sync.Mutex
	items map[string]TodoResponse
	gone  map[string]bool
}

func newTombstoneStore() *tombstoneStore {
	return &tombstoneStore{items: map[string]TodoResponse{}, gone: map[string]bool{}}
}

func (s *tombstoneStore) Get(_ context.Context, key string) (TodoResponse, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *tombstoneStore) Add(_ context.Context, key string, value TodoResponse) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; ok || s.gone[key] {
		return false, nil
	}
	s.items[key] = value
	return true, nil
}

func (s *tombstoneStore) Invalidate(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	s.gone[key] = true
	return nil
}

var _ cache.Store[TodoResponse] = (*tombstoneStore)(nil)

func tombstoneHarness(t *testing.T) (*harness, Service) {
	t.Helper()
	h := newHarness(t)
	svc := NewService(logger.Nop(), func() Session { return fakeSession{InjectedUnitOfWork: h.uow, repo: h.repo} },
		NewProjectionCache(newTombstoneStore(), nil, logger.Nop()), nil)
	return h, svc
}

// interleave runs fn once, right after the next repository read.
func interleave(h *harness, fn func()) {
	h.repo.afterRead = func() {
		h.repo.afterRead = nil
		fn()
	}
}

type brokenStore struct{}

var errRedisDown = errors.New("redis down")

func (brokenStore) Get(context.Context, string) (TodoResponse, bool, error) {
	return TodoResponse{}, false, errRedisDown
}
func (brokenStore) Add(context.Context, string, TodoResponse) (bool, error) {
	return false, errRedisDown
}
func (brokenStore) Invalidate(context.Context, string) error { return errRedisDown }

func TestProjectionCacheSwallowsStoreErrors(t *testing.T) {
	c := NewProjectionCache(brokenStore{}, observability.NewMetrics(logger.Nop()), logger.Nop())
	ctx := context.Background()
	id := uuid.New()

	c.Set(ctx, TodoResponse{ID: id})
	c.Invalidate(ctx, id)
	if _, ok := c.Get(ctx, id); ok {
		t.Fatalf("a failing store must read as a miss")
	}
}

func TestBrokenCacheDoesNotBreakGet(t *testing.T) {
	h := newHarness(t)
	id := h.seed(t, uuid.New(), "Resilient")
	svc := NewService(logger.Nop(), func() Session { return fakeSession{InjectedUnitOfWork: h.uow, repo: h.repo} },
		NewProjectionCache(brokenStore{}, nil, logger.Nop()), nil)

	r := svc.Get(context.Background(), id)
	if r.IsFailure() || r.Value().Title != "Resilient" {
		t.Fatalf("Get with broken cache: %v", r.Errors())
	}
}

func TestGetDoesNotCacheAcrossConcurrentDelete(t *testing.T) {
	h, svc := tombstoneHarness(t)
	ctx := context.Background()
	project := uuid.New()
	id := h.seed(t, project, "Short lived")

	interleave(h, func() {
		if r := svc.Delete(ctx, DeleteCommand{TodoID: id, ProjectID: project}); r.IsFailure() {
			t.Errorf("Delete: %v", r.Errors())
		}
	})
	if r := svc.Get(ctx, id); r.IsFailure() {
		t.Fatalf("first Get read the row before the delete: %v", r.Errors())
	}

	r := svc.Get(ctx, id)
	assertErrors(t, r.Errors(), todo.ErrNotFound)
}

func TestGetDoesNotCacheAcrossConcurrentUpdate(t *testing.T) {
	h, svc := tombstoneHarness(t)
	ctx := context.Background()
	project := uuid.New()
	id := h.seed(t, project, "Before")

	interleave(h, func() {
		if r := svc.ChangeTitle(ctx, ChangeTitleCommand{TodoID: id, ProjectID: project, Title: "After"}); r.IsFailure() {
			t.Errorf("ChangeTitle: %v", r.Errors())
		}
	})
	_ = svc.Get(ctx, id)

	r := svc.Get(ctx, id)
	if r.IsFailure() || r.Value().Title != "After" {
		t.Fatalf("want fresh title After, got %+v %v", r.Value(), r.Errors())
	}
}

func TestProjectionCacheSetKeepsTombstone(t *testing.T) {
	c := NewProjectionCache(newTombstoneStore(), nil, logger.Nop())
	ctx := context.Background()
	id := uuid.New()

	c.Set(ctx, TodoResponse{ID: id, Title: "v1"})
	c.Invalidate(ctx, id)
	c.Set(ctx, TodoResponse{ID: id, Title: "stale"})
	if v, ok := c.Get(ctx, id); ok {
		t.Fatalf("stale projection cached after invalidation: %+v", v)
	}
}
