package repo

import (
	"context"
	"fmt"

	"TaskTracker/internal/db"
	dom "TaskTracker/internal/domain"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// UserRepo provides user persistence.
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	GetByID(ctx context.Context, id int64) (dom.User, error)
	Create(ctx context.Context, u dom.User) (dom.User, error)
}

// SQLiteUserRepo implements UserRepo with SQLite.
type SQLiteUserRepo struct {
	db *db.Pool
}

// NewSQLiteUserRepo returns a new SQLiteUserRepo.
func NewSQLiteUserRepo(pool *db.Pool) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: pool}
}

const userColumns = `id, username, email, password_hash, created_at`

// GetByUsername returns the user by username, or ErrNotFound.
func (r *SQLiteUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

// GetByID returns the user by id, or ErrNotFound.
func (r *SQLiteUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// Create inserts a new user and returns it with its assigned id.
// Unique violations are returned unwrapped enough for utils.UniqueViolation.
func (r *SQLiteUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	err := r.db.With(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn,
			`INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{u.Username, u.Email, u.PasswordHash, formatTime(u.CreatedAt)}})
		if err != nil {
			return err
		}
		u.ID = conn.LastInsertRowID()
		return nil
	})
	if err != nil {
		return dom.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (r *SQLiteUserRepo) getOne(ctx context.Context, query string, arg any) (dom.User, error) {
	var (
		u     dom.User
		found bool
	)
	err := r.db.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{arg},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				u, err = scanUser(stmt)
				found = true
				return err
			},
		})
	})
	if err != nil {
		return dom.User{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return dom.User{}, ErrNotFound
	}
	return u, nil
}

func scanUser(stmt *sqlite.Stmt) (dom.User, error) {
	u := dom.User{
		ID:           stmt.ColumnInt64(0),
		Username:     stmt.ColumnText(1),
		Email:        stmt.ColumnText(2),
		PasswordHash: stmt.ColumnText(3),
	}
	created, err := parseTime(stmt.ColumnText(4))
	if err != nil {
		return dom.User{}, fmt.Errorf("user %d created_at: %w", u.ID, err)
	}
	u.CreatedAt = created
	return u, nil
}
