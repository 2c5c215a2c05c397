// Package testutil provides store fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"teslo/internal/database"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DB opens a fresh, migrated SQLite database in a temporary directory
// private to tb.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "catalog.db")
	db, err := database.Open("sqlite", database.SQLiteFileDSN(path), gormLogger.Silent)
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("failed to access test db pool: %v", err)
	}
	tb.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// CountImages returns how many image rows reference productID.
func CountImages(tb testing.TB, db *gorm.DB, productID string) int64 {
	tb.Helper()

	var count int64
	if err := db.Table("product_images").Where("product_id = ?", productID).Count(&count).Error; err != nil {
		tb.Fatalf("failed to count images: %v", err)
	}
	return count
}
