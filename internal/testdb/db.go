// Package testdb provides an in-memory SQLite database for service and
// handler tests. Schema comes from the same AutoMigrate the server runs.
package testdb

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantrysnap/backend/internal/database"
)

var dbSeq atomic.Int64

// New opens a fresh in-memory database migrated to the current schema.
// Each call gets its own database; tests never share state. The database
// is uniquely named with cache=shared so every pooled connection sees the
// same schema rather than a fresh empty database.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
