// database/db.go - Database Connection
package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the event store and runs migrations. The returned
// handle is owned by the caller: main opens it at startup, passes it
// to the services, and closes it on shutdown.
//
// PostgreSQL is the default. DB_DRIVER=sqlite switches to a local
// file-backed store, which the seeder and small on-site setups use.
func Connect() (*gorm.DB, error) {
	var dialector gorm.Dialector

	if os.Getenv("DB_DRIVER") == "sqlite" {
		dialector = sqlite.Open(getEnvOrDefault("DB_PATH", "./records.db"))
	} else {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			// Fallback to individual parameters
			host := getEnvOrDefault("DB_HOST", "localhost")
			port := getEnvOrDefault("DB_PORT", "5432")
			user := getEnvOrDefault("DB_USER", "postgres")
			password := getEnvOrDefault("DB_PASSWORD", "")
			dbname := getEnvOrDefault("DB_NAME", "racelog")
			sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
				host, port, user, password, dbname, sslmode)
		}
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Duplicate-key violations must surface as gorm.ErrDuplicatedKey
		// so the record service can map them to "already logged".
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("✅ Event store connected")
	return db, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Close closes the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("Database connection closed")
	return nil
}
