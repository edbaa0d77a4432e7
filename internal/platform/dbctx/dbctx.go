package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
// Repositories use Tx when it is set and fall back to their own handle
// otherwise.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Conn returns the handle a repository should query through, bound to Ctx.
func (c Context) Conn(fallback *gorm.DB) *gorm.DB {
	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if c.Tx != nil {
		return c.Tx.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}
