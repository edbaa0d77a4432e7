// Package store hands out one unit-of-work session per command, with the
// repositories bound to it.
package store

import (
	"gorm.io/gorm"

	todorepo "github.com/kovalchuka569/taskflow/internal/data/repos/todo"
	"github.com/kovalchuka569/taskflow/internal/data/uow"
	"github.com/kovalchuka569/taskflow/internal/domain/todo"
	"github.com/kovalchuka569/taskflow/internal/platform/logger"
)

type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(db *gorm.DB, log *logger.Logger) *Store {
	return &Store{db: db, log: log}
}

// Session is a unit of work plus the repositories that register changes on
// it.
type Session struct {
	*uow.Session
	todos *todorepo.Repo
}

// Open starts a fresh session. Sessions are cheap and must not be shared
// between commands.
func (s *Store) Open() *Session {
	session := uow.NewSession(s.db, s.log)
	return &Session{Session: session, todos: todorepo.NewRepo(session, s.log)}
}

func (s *Session) Todos() todo.Repository { return s.todos }
