package todo

import (
	"time"

	"github.com/google/uuid"

	domain "github.com/kovalchuka569/taskflow/internal/domain/todo"
)

// TodoRecord is the row shape of the todos table.
type TodoRecord struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primaryKey;index:todos_project_id_id_idx,priority:2"`
	ProjectID               uuid.UUID       `gorm:"type:uuid;not null;index:todos_project_id_id_idx,priority:1"`
	AuthorID                uuid.UUID       `gorm:"type:uuid;not null"`
	PublicID                string          `gorm:"type:varchar(8);not null;uniqueIndex:todos_public_id_key"`
	Title                   string          `gorm:"type:varchar(255);not null"`
	Description             string          `gorm:"type:varchar(2500);not null;default:''"`
	Status                  domain.Status   `gorm:"type:varchar(32);not null;index:status_idx"`
	Priority                domain.Priority `gorm:"type:varchar(32);not null;index:priority_idx"`
	DueDate                 time.Time       `gorm:"not null"`
	EstimatedCompletionTime time.Time       `gorm:"not null"`
	CreatedAt               time.Time       `gorm:"not null;autoCreateTime:false"`
	ChangedAt               time.Time       `gorm:"not null"`
}

func (TodoRecord) TableName() string { return "todos" }

func recordFromSnapshot(s domain.Snapshot) TodoRecord {
	return TodoRecord{
		ID:                      s.ID,
		ProjectID:               s.ProjectID,
		AuthorID:                s.AuthorID,
		PublicID:                s.PublicID,
		Title:                   s.Title,
		Description:             s.Description,
		Status:                  s.Status,
		Priority:                s.Priority,
		DueDate:                 s.DueDate.UTC(),
		EstimatedCompletionTime: s.EstimatedCompletionTime.UTC(),
		CreatedAt:               s.CreatedAt.UTC(),
		ChangedAt:               s.ChangedAt.UTC(),
	}
}

func (r TodoRecord) snapshot() domain.Snapshot {
	return domain.Snapshot{
		ID:                      r.ID,
		ProjectID:               r.ProjectID,
		AuthorID:                r.AuthorID,
		PublicID:                r.PublicID,
		Title:                   r.Title,
		Description:             r.Description,
		Status:                  r.Status,
		Priority:                r.Priority,
		DueDate:                 r.DueDate.UTC(),
		EstimatedCompletionTime: r.EstimatedCompletionTime.UTC(),
		CreatedAt:               r.CreatedAt,
		ChangedAt:               r.ChangedAt,
	}
}

// mutableColumns lists the columns an Update may rewrite.
func (r TodoRecord) mutableColumns() map[string]interface{} {
	return map[string]interface{}{
		"title":                     r.Title,
		"description":               r.Description,
		"status":                    r.Status,
		"priority":                  r.Priority,
		"due_date":                  r.DueDate,
		"estimated_completion_time": r.EstimatedCompletionTime,
		"changed_at":                r.ChangedAt,
	}
}
