// Package storagetest provides a storage.Service backed by an in-memory SQLite
// database for tests in other packages.
package storagetest

import (
	"complaintbox/backend/internal/storage"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh in-memory database. The pool is pinned to one
// connection because every SQLite :memory: connection is its own database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// NewService returns a migrated storage.Service without Redis.
func NewService(t testing.TB) *storage.Service {
	t.Helper()
	s := storage.NewStorageService(NewDB(t), nil)
	require.NoError(t, s.Migrate())
	return s
}

// Clock is a deterministic time source that advances one second per call.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock starts the clock at a fixed UTC instant.
func NewClock() *Clock {
	return &Clock{current: time.Date(2025, 10, 25, 12, 0, 0, 0, time.UTC)}
}

// Now returns the next instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(time.Second)
	return c.current
}
