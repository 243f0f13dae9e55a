package db_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"TaskTracker/internal/db"
	"TaskTracker/internal/db/dbtest"
)

func TestMigrateCreatesSchema(t *testing.T) {
	pool := dbtest.Open(t)

	var tables []string
	err := pool.With(context.Background(), func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'tasks', 'sessions') ORDER BY name`,
			&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
				tables = append(tables, stmt.ColumnText(0))
				return nil
			}})
	})
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	want := []string{"sessions", "tasks", "users"}
	if len(tables) != len(want) {
		t.Fatalf("tables = %v, want %v", tables, want)
	}
	for i := range want {
		if tables[i] != want[i] {
			t.Errorf("tables[%d] = %q, want %q", i, tables[i], want[i])
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	for i := 0; i < 2; i++ {
		if err := db.Migrate(path); err != nil {
			t.Fatalf("Migrate #%d: %v", i+1, err)
		}
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	pool := dbtest.Open(t)

	err := pool.With(context.Background(), func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`INSERT INTO tasks (user_id, task, due_date, created_at) VALUES (?, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{999, "orphan", "2025-01-01", "2025-01-01T00:00:00.000000Z"}})
	})
	if err == nil {
		t.Fatal("insert with unknown owner succeeded, want foreign key error")
	}
}

func TestPriorityCheckConstraint(t *testing.T) {
	pool := dbtest.Open(t)
	ctx := context.Background()

	err := pool.With(ctx, func(conn *sqlite.Conn) error {
		if err := sqlitex.Execute(conn,
			`INSERT INTO users (username, email, password_hash, created_at) VALUES ('a', 'a@x.com', 'h', 'now')`, nil); err != nil {
			return err
		}
		return sqlitex.Execute(conn,
			`INSERT INTO tasks (user_id, task, priority, due_date, created_at) VALUES (?, 'x', 'urgent', '2025-01-01', 'now')`,
			&sqlitex.ExecOptions{Args: []any{conn.LastInsertRowID()}})
	})
	if err == nil {
		t.Fatal("insert with unknown priority succeeded, want CHECK failure")
	}
	if code := sqlite.ErrCode(err).ToPrimary(); code != sqlite.ResultConstraint {
		t.Errorf("error code = %v, want constraint violation", code)
	}
}

func TestWithReturnsConnectionOnError(t *testing.T) {
	pool := dbtest.Open(t)
	boom := errors.New("boom")

	// The test pool holds two connections; leaking would block the third With.
	for i := 0; i < 5; i++ {
		err := pool.With(context.Background(), func(*sqlite.Conn) error { return boom })
		if !errors.Is(err, boom) {
			t.Fatalf("With #%d = %v, want boom", i, err)
		}
	}
}

func TestEmptyPathRejected(t *testing.T) {
	if _, err := db.Open(db.Config{}); err == nil {
		t.Fatal("expected error for empty Path")
	}
}
