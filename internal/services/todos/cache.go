package todos

import (
	"context"

	"github.com/google/uuid"

	"github.com/kovalchuka569/taskflow/internal/data/cache"
	"github.com/kovalchuka569/taskflow/internal/observability"
	"github.com/kovalchuka569/taskflow/internal/platform/logger"
)

// ProjectionCache is a read-through cache of TodoResponse by todo id.
// Failures are swallowed: the cache never changes a command's outcome.
// Set never overwrites an entry and Invalidate leaves a tombstone, so a read
// racing a committed mutation cannot repopulate the old projection.
type ProjectionCache interface {
	Get(ctx context.Context, todoID uuid.UUID) (TodoResponse, bool)
	Set(ctx context.Context, t TodoResponse)
	Invalidate(ctx context.Context, todoID uuid.UUID)
}

// CacheKeyPrefix namespaces projection keys: taskflow:todo:<uuid>.
const CacheKeyPrefix = "taskflow:todo:"

type projectionCache struct {
	store   cache.Store[TodoResponse]
	metrics *observability.Metrics
	log     *logger.Logger
}

func NewProjectionCache(store cache.Store[TodoResponse], metrics *observability.Metrics, baseLog *logger.Logger) ProjectionCache {
	return &projectionCache{store: store, metrics: metrics, log: baseLog.With("component", "ProjectionCache")}
}

func (c *projectionCache) Get(ctx context.Context, todoID uuid.UUID) (TodoResponse, bool) {
	v, ok, err := c.store.Get(ctx, todoID.String())
	if err != nil {
		c.log.Warn("projection cache read failed", "todo_id", todoID, "error", err)
		return TodoResponse{}, false
	}
	c.metrics.ObserveCacheLookup(ok)
	return v, ok
}

func (c *projectionCache) Set(ctx context.Context, t TodoResponse) {
	if _, err := c.store.Add(ctx, t.ID.String(), t); err != nil {
		c.log.Warn("projection cache write failed", "todo_id", t.ID, "error", err)
	}
}

func (c *projectionCache) Invalidate(ctx context.Context, todoID uuid.UUID) {
	if err := c.store.Invalidate(context.WithoutCancel(ctx), todoID.String()); err != nil {
		c.log.Warn("projection cache invalidation failed", "todo_id", todoID, "error", err)
	}
}

type noopProjectionCache struct{}

func (noopProjectionCache) Get(context.Context, uuid.UUID) (TodoResponse, bool) {
	return TodoResponse{}, false
}
func (noopProjectionCache) Set(context.Context, TodoResponse)     {}
func (noopProjectionCache) Invalidate(context.Context, uuid.UUID) {}

func NoopProjectionCache() ProjectionCache { return noopProjectionCache{} }
