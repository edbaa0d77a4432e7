// Package uow implements the unit of work on top of GORM transactions.
//
// A Session lives for one command. Repositories bound to the session read
// through the open transaction (or the plain handle when none is open) and
// register their writes as pending changes; Commit applies every pending
// change in order and commits them atomically.
package uow

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kovalchuka569/taskflow/internal/domain/kernel"
	"github.com/kovalchuka569/taskflow/internal/platform/dbctx"
	"github.com/kovalchuka569/taskflow/internal/platform/logger"
)

// Change is one pending write. Apply runs inside the commit transaction and
// reports the rows it touched.
type Change struct {
	Op    string
	Apply func(tx *gorm.DB) (int64, error)
}

// Session is a GORM-backed kernel.UnitOfWork. It is not safe for concurrent
// use; open one per command.
type Session struct {
	db      *gorm.DB
	log     *logger.Logger
	tx      *gorm.DB
	pending []Change
}

var _ kernel.UnitOfWork = (*Session)(nil)

func NewSession(db *gorm.DB, log *logger.Logger) *Session {
	return &Session{db: db, log: log.With("component", "uow.Session")}
}

// InTransaction reports whether BeginTransaction opened a transaction that
// has not been committed or rolled back yet.
func (s *Session) InTransaction() bool { return s.tx != nil }

// Pending returns the number of registered, uncommitted changes.
func (s *Session) Pending() int { return len(s.pending) }

func (s *Session) BeginTransaction(ctx context.Context) error {
	if s.tx != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return MapError("uow.begin", err)
	}
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return MapError("uow.begin", tx.Error)
	}
	s.tx = tx
	return nil
}

func (s *Session) Commit(ctx context.Context) (int, error) {
	pending := s.pending
	s.pending = nil

	tx := s.tx
	s.tx = nil
	if tx == nil {
		if len(pending) == 0 {
			return 0, nil
		}
		if err := ctx.Err(); err != nil {
			return 0, MapError("uow.commit", err)
		}
		tx = s.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return 0, MapError("uow.commit", tx.Error)
		}
	}

	start := time.Now()
	affected := 0
	for _, change := range pending {
		if err := ctx.Err(); err != nil {
			s.rollbackQuietly(tx)
			return 0, MapError(change.Op, err)
		}
		n, err := change.Apply(tx.WithContext(ctx))
		if err != nil {
			s.rollbackQuietly(tx)
			return 0, MapError(change.Op, err)
		}
		affected += int(n)
	}
	if err := tx.Commit().Error; err != nil {
		s.rollbackQuietly(tx)
		return 0, MapError("uow.commit", err)
	}
	s.log.Debug("unit of work committed", "changes", len(pending), "rows", affected, "duration", time.Since(start))
	return affected, nil
}

func (s *Session) Rollback(ctx context.Context) error {
	s.pending = nil
	tx := s.tx
	if tx == nil {
		return nil
	}
	s.tx = nil
	if err := tx.Rollback().Error; err != nil && !errors.Is(err, sql.ErrTxDone) {
		return MapError("uow.rollback", err)
	}
	return nil
}

func (s *Session) rollbackQuietly(tx *gorm.DB) {
	if err := tx.Rollback().Error; err != nil && !errors.Is(err, sql.ErrTxDone) {
		s.log.Warn("rollback after failed commit", "error", err)
	}
}

// Register queues a change for the next Commit.
func (s *Session) Register(change Change) {
	s.pending = append(s.pending, change)
}

// DBContext binds ctx to the open transaction, if any.
func (s *Session) DBContext(ctx context.Context) dbctx.Context {
	return dbctx.Context{Ctx: ctx, Tx: s.tx}
}

// DB returns the session's base handle.
func (s *Session) DB() *gorm.DB { return s.db }
