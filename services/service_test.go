package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"racelog/database"
	"racelog/models"
)

// newTestDB opens an in-memory store with the production schema. One
// pooled connection keeps the memory database alive and serializes
// concurrent transactions the way the production isolation level does.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// seedCourse creates one team and one checkpoint with two tasks:
// team 1, checkpoint 2, task 10 worth 5 points and task 11 worth 2.
func seedCourse(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&models.Team{ID: 1, Name: "Foxes", JoinCode: "code-foxes"}).Error)
	require.NoError(t, db.Create(&models.Checkpoint{ID: 2, Name: "Old Mill", Position: 1}).Error)
	require.NoError(t, db.Create(&models.Task{ID: 10, CheckpointID: 2, Name: "Knot relay", Points: 5}).Error)
	require.NoError(t, db.Create(&models.Task{ID: 11, CheckpointID: 2, Name: "Map bearing", Points: 2}).Error)
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
