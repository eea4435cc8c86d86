// Package dbtest opens isolated in-memory databases for tests.
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/maderas/backend/internal/migration"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// Open returns an empty in-memory SQLite database with foreign keys enforced.
// Each call gets its own database, closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, seq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// a single connection keeps the shared in-memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// OpenWithSchema returns a database with the full application schema applied.
func OpenWithSchema(t testing.TB) *gorm.DB {
	t.Helper()

	db := Open(t)
	schema, err := migration.Schema("sqlite")
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	if err := db.Exec(schema).Error; err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}
