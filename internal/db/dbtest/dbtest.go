// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"TaskTracker/internal/db"
)

// Open returns a pool over a freshly migrated database in t.TempDir().
// The pool is closed when the test completes.
func Open(t testing.TB) *db.Pool {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.db")
	if err := db.Migrate(path); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	pool, err := db.Open(db.Config{Path: path, PoolSize: 2})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return pool
}
