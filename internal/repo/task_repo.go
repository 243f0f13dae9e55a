package repo

import (
	"context"
	"fmt"
	"time"

	"TaskTracker/internal/db"
	dom "TaskTracker/internal/domain"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// TaskRepo provides task persistence. Every method is scoped to the
// owning user; rows of other users behave as if they did not exist.
type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, userID, id int64) (dom.Task, error)
	List(ctx context.Context, userID int64, due *time.Time) ([]dom.Task, error)
	Update(ctx context.Context, userID, id int64, patch dom.Task) (bool, error)
	Complete(ctx context.Context, userID, id int64, dueOnOrBefore time.Time) (bool, error)
	Uncomplete(ctx context.Context, userID, id int64) (bool, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

type SQLiteTaskRepo struct {
	db *db.Pool
}

func NewSQLiteTaskRepo(pool *db.Pool) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: pool}
}

const taskColumns = `id, user_id, task, completed, priority, due_date, created_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	t.Completed = false
	err := r.db.With(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn,
			`INSERT INTO tasks (user_id, task, completed, priority, due_date, created_at) VALUES (?, ?, 0, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{
				t.UserID, t.Text, t.Priority.String(), dom.FormatDate(t.DueDate), formatTime(t.CreatedAt),
			}})
		if err != nil {
			return err
		}
		t.ID = conn.LastInsertRowID()
		return nil
	})
	if err != nil {
		return dom.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, userID, id int64) (dom.Task, error) {
	list, err := r.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return dom.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	if len(list) == 0 {
		return dom.Task{}, ErrNotFound
	}
	return list[0], nil
}

// List returns the user's tasks by due date ascending, newest first
// within a day. A non-nil due restricts the result to that date.
func (r *SQLiteTaskRepo) List(ctx context.Context, userID int64, due *time.Time) ([]dom.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`
	args := []any{userID}
	if due != nil {
		query += ` AND due_date = ?`
		args = append(args, dom.FormatDate(*due))
	}
	query += ` ORDER BY due_date ASC, created_at DESC, id DESC`

	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return list, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, userID, id int64, patch dom.Task) (bool, error) {
	return r.exec(ctx, "update task",
		`UPDATE tasks SET task = ?, priority = ?, due_date = ? WHERE id = ? AND user_id = ?`,
		patch.Text, patch.Priority.String(), dom.FormatDate(patch.DueDate), id, userID)
}

// Complete marks the task done only if it is due on or before the given
// date. It reports false when no row matched either condition.
func (r *SQLiteTaskRepo) Complete(ctx context.Context, userID, id int64, dueOnOrBefore time.Time) (bool, error) {
	return r.exec(ctx, "complete task",
		`UPDATE tasks SET completed = 1 WHERE id = ? AND user_id = ? AND due_date <= ?`,
		id, userID, dom.FormatDate(dueOnOrBefore))
}

func (r *SQLiteTaskRepo) Uncomplete(ctx context.Context, userID, id int64) (bool, error) {
	return r.exec(ctx, "uncomplete task",
		`UPDATE tasks SET completed = 0 WHERE id = ? AND user_id = ?`, id, userID)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, userID, id int64) (bool, error) {
	return r.exec(ctx, "delete task",
		`DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
}

// exec runs a single-row write and reports whether a row matched.
// SQLite counts a matched UPDATE as a change even when values are equal.
func (r *SQLiteTaskRepo) exec(ctx context.Context, op, query string, args ...any) (bool, error) {
	var changed int
	err := r.db.With(ctx, func(conn *sqlite.Conn) error {
		if err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{Args: args}); err != nil {
			return err
		}
		changed = conn.Changes()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%s %v: %w", op, args[0], err)
	}
	return changed > 0, nil
}

func (r *SQLiteTaskRepo) query(ctx context.Context, query string, args ...any) ([]dom.Task, error) {
	var list []dom.Task
	err := r.db.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				t, err := scanTask(stmt)
				if err != nil {
					return err
				}
				list = append(list, t)
				return nil
			},
		})
	})
	return list, err
}

func scanTask(stmt *sqlite.Stmt) (dom.Task, error) {
	t := dom.Task{
		ID:        stmt.ColumnInt64(0),
		UserID:    stmt.ColumnInt64(1),
		Text:      stmt.ColumnText(2),
		Completed: stmt.ColumnInt64(3) != 0,
	}
	p, err := dom.ParsePriority(stmt.ColumnText(4))
	if err != nil {
		return dom.Task{}, fmt.Errorf("task %d: %w", t.ID, err)
	}
	t.Priority = p
	if t.DueDate, err = dom.ParseDate(stmt.ColumnText(5)); err != nil {
		return dom.Task{}, fmt.Errorf("task %d due_date: %w", t.ID, err)
	}
	if t.CreatedAt, err = parseTime(stmt.ColumnText(6)); err != nil {
		return dom.Task{}, fmt.Errorf("task %d created_at: %w", t.ID, err)
	}
	return t, nil
}
