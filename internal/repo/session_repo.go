package repo

import (
	"context"
	"fmt"
	"time"

	"TaskTracker/internal/db"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// SQLiteSessionRepo persists session identities in the sessions table.
type SQLiteSessionRepo struct {
	db *db.Pool
}

func NewSQLiteSessionRepo(pool *db.Pool) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: pool}
}

// Create stores a session that is valid until expiresAt.
func (r *SQLiteSessionRepo) Create(ctx context.Context, id string, userID int64, expiresAt time.Time) error {
	err := r.db.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{id, userID, formatTime(expiresAt)}})
	})
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetUserID returns the user bound to an unexpired session.
func (r *SQLiteSessionRepo) GetUserID(ctx context.Context, id string, now time.Time) (int64, bool, error) {
	var (
		userID int64
		found  bool
	)
	err := r.db.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT user_id FROM sessions WHERE id = ? AND expires_at > ?`,
			&sqlitex.ExecOptions{
				Args: []any{id, formatTime(now)},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					userID = stmt.ColumnInt64(0)
					found = true
					return nil
				},
			})
	})
	if err != nil {
		return 0, false, fmt.Errorf("get session: %w", err)
	}
	return userID, found, nil
}

// Delete removes a session. Unknown ids are not an error.
func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	err := r.db.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `DELETE FROM sessions WHERE id = ?`,
			&sqlitex.ExecOptions{Args: []any{id}})
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired deletes sessions that expired at or before now and
// returns how many were removed.
func (r *SQLiteSessionRepo) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	var n int
	err := r.db.With(ctx, func(conn *sqlite.Conn) error {
		if err := sqlitex.Execute(conn, `DELETE FROM sessions WHERE expires_at <= ?`,
			&sqlitex.ExecOptions{Args: []any{formatTime(now)}}); err != nil {
			return err
		}
		n = conn.Changes()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return n, nil
}
