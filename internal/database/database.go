package database

import (
	"fmt"

	"teslo/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Open connects to the configured relational store. driver is "postgres"
// or "sqlite". For sqlite, build dsn with SQLiteFileDSN: image rows are only
// removed with their product when foreign keys are on, and shared-cache
// in-memory databases lock whole tables against readers during an update.
func Open(driver, dsn string, logLevel gormLogger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the catalog schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Product{}, &models.ProductImage{}, &models.User{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// SQLiteFileDSN returns a DSN for the SQLite database file at path with
// foreign keys enforced and write-ahead logging on. In WAL mode a reader on
// another connection sees the last committed state while a write
// transaction is open. Transactions take the write lock when they begin and
// contending writers wait up to five seconds for it.
func SQLiteFileDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate", path)
}
