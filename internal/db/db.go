package db

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/boxfit/reservas/internal/models"
)

// Open connects to the sqlite database at path and migrates the schema.
// The returned handle is the only one in the process; callers pass it down
// explicitly instead of reading a package global.
func Open(path string) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// SQLite works best with a single writer; cap the pool accordingly.
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := conn.AutoMigrate(
		&models.User{},
		&models.Class{},
		&models.Reservation{},
	); err != nil {
		return nil, err
	}

	// Composite index that GORM doesn't auto-create from struct tags.
	// Deliberately NOT unique: duplicates are rejected by the reservation
	// flow, matching the behaviour of the system this replaces.
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_res_user_class ON reservations(user_id, class_id)")
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_res_class      ON reservations(class_id)")

	return conn, nil
}
