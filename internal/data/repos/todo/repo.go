// Package todo persists the Todo aggregate through GORM.
package todo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kovalchuka569/taskflow/internal/data/uow"
	domain "github.com/kovalchuka569/taskflow/internal/domain/todo"
	"github.com/kovalchuka569/taskflow/internal/platform/logger"
)

// ErrCorruptRow is returned when a stored row no longer passes validation.
var ErrCorruptRow = errors.New("stored todo failed validation")

// Repo is the session-bound todo repository. Reads go through the session's
// open transaction when there is one; writes are registered on the session
// and applied by its Commit.
type Repo struct {
	session *uow.Session
	log     *logger.Logger
}

var _ domain.Repository = (*Repo)(nil)

func NewRepo(session *uow.Session, baseLog *logger.Logger) *Repo {
	return &Repo{session: session, log: baseLog.With("repo", "TodoRepo")}
}

func (r *Repo) conn(ctx context.Context) *gorm.DB {
	return r.session.DBContext(ctx).Conn(r.session.DB())
}

func (r *Repo) GetByID(ctx context.Context, id domain.TodoID) (*domain.Todo, error) {
	return r.first(ctx, "id = ?", id.UUID())
}

func (r *Repo) GetByTodoIDAndProjectID(ctx context.Context, id domain.TodoID, projectID domain.ProjectID) (*domain.Todo, error) {
	return r.first(ctx, "id = ? AND project_id = ?", id.UUID(), projectID.UUID())
}

func (r *Repo) GetByProjectID(ctx context.Context, projectID domain.ProjectID) ([]*domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []TodoRecord
	err := r.conn(ctx).
		Where("project_id = ?", projectID.UUID()).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Todo, 0, len(rows))
	for _, row := range rows {
		t, err := r.restore(row)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *Repo) first(ctx context.Context, query string, args ...interface{}) (*domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var row TodoRecord
	err := r.conn(ctx).Where(query, args...).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.restore(row)
}

func (r *Repo) restore(row TodoRecord) (*domain.Todo, error) {
	restored := domain.Restore(row.snapshot())
	if restored.IsFailure() {
		r.log.Error("stored todo failed validation", "todo_id", row.ID, "errors", restored.Errors())
		return nil, fmt.Errorf("todo %s: %w: %w", row.ID, ErrCorruptRow, restored.Err())
	}
	return restored.Value(), nil
}

func (r *Repo) Add(ctx context.Context, t *domain.Todo) error {
	if t == nil {
		return errors.New("todo repo: add nil todo")
	}
	rec := recordFromSnapshot(t.Snapshot())
	r.session.Register(uow.Change{
		Op: "todo.add",
		Apply: func(tx *gorm.DB) (int64, error) {
			res := tx.Create(&rec)
			return res.RowsAffected, res.Error
		},
	})
	return nil
}

func (r *Repo) Update(ctx context.Context, t *domain.Todo) error {
	if t == nil {
		return errors.New("todo repo: update nil todo")
	}
	rec := recordFromSnapshot(t.Snapshot())
	r.session.Register(uow.Change{
		Op: "todo.update",
		Apply: func(tx *gorm.DB) (int64, error) {
			res := tx.Model(&TodoRecord{}).
				Where("id = ? AND project_id = ?", rec.ID, rec.ProjectID).
				Updates(rec.mutableColumns())
			if res.Error != nil {
				return 0, res.Error
			}
			if res.RowsAffected == 0 {
				return 0, uow.ErrNoRowsAffected
			}
			return res.RowsAffected, nil
		},
	})
	return nil
}

func (r *Repo) Remove(ctx context.Context, t *domain.Todo) error {
	if t == nil {
		return errors.New("todo repo: remove nil todo")
	}
	id, projectID := t.ID().UUID(), t.ProjectID().UUID()
	r.session.Register(uow.Change{
		Op: "todo.remove",
		Apply: func(tx *gorm.DB) (int64, error) {
			res := tx.Where("id = ? AND project_id = ?", id, projectID).Delete(&TodoRecord{})
			if res.Error != nil {
				return 0, res.Error
			}
			if res.RowsAffected == 0 {
				return 0, uow.ErrNoRowsAffected
			}
			return res.RowsAffected, nil
		},
	})
	return nil
}
