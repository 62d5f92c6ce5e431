// database/migrate.go - Database Migration Runner
package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"racelog/models"
)

// Migrate creates the reference tables and the append-only event log
// tables. Event rows are only ever inserted; nothing here supports an
// update or delete path.
func Migrate(db *gorm.DB) error {
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.Team{},
		&models.Checkpoint{},
		&models.Task{},
		&models.TaskLog{},
		&models.ArrivalLog{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes(db)

	log.Println("✅ Migrations completed")
	return nil
}

// createIndexes creates the read-path indexes. The unique visit index
// on arrival_log comes from the model tags; these only speed up the
// score projection and the task catalog filter.
func createIndexes(db *gorm.DB) {
	db.Exec("CREATE INDEX IF NOT EXISTS idx_task_log_team ON task_log(team_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_task_log_completed ON task_log(team_id, completed)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_task_checkpoint ON task(checkpoint_id)")
}
