package db

import (
	"fmt"

	"gorm.io/gorm"

	todorepo "github.com/kovalchuka569/taskflow/internal/data/repos/todo"
)

// AutoMigrateAll creates or upgrades every table the service owns.
func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(&todorepo.TodoRecord{}); err != nil {
		return fmt.Errorf("automigrate todos: %w", err)
	}
	return nil
}
