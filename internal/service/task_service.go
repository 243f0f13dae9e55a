package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"TaskTracker/internal/clock"
	dom "TaskTracker/internal/domain"
	"TaskTracker/internal/repo"
)

// TaskService implements task operations. Every call is scoped to the
// owning user id; operations on tasks the user does not own are no-ops.
type TaskService struct {
	repo  repo.TaskRepo
	clock clock.Clock
	loc   *time.Location
}

// NewTaskService creates a TaskService. "Today" is the clock's calendar
// date in loc; a nil loc means time.Local.
func NewTaskService(r repo.TaskRepo, clk clock.Clock, loc *time.Location) *TaskService {
	if loc == nil {
		loc = time.Local
	}
	return &TaskService{repo: r, clock: clk, loc: loc}
}

// Today returns the current calendar date.
func (s *TaskService) Today() time.Time {
	return dom.DateOf(s.clock.Now().In(s.loc))
}

// TaskInput carries the user-editable fields as submitted.
type TaskInput struct {
	Text     string
	Priority string
	DueDate  string
}

// List returns the user's tasks, optionally only those due on date.
func (s *TaskService) List(ctx context.Context, userID int64, date *time.Time) ([]dom.Task, error) {
	return s.repo.List(ctx, userID, date)
}

// ListToday returns the user's tasks due today.
func (s *TaskService) ListToday(ctx context.Context, userID int64) ([]dom.Task, error) {
	today := s.Today()
	return s.repo.List(ctx, userID, &today)
}

// Add validates in and stores a new, incomplete task.
func (s *TaskService) Add(ctx context.Context, userID int64, in TaskInput) (dom.Task, error) {
	fields, err := s.validate(in)
	if err != nil {
		return dom.Task{}, err
	}
	fields.UserID = userID
	fields.CreatedAt = s.clock.Now().UTC()
	return s.repo.Create(ctx, fields)
}

// Edit validates in and updates the owned task's text, priority and due date.
func (s *TaskService) Edit(ctx context.Context, userID, id int64, in TaskInput) error {
	fields, err := s.validate(in)
	if err != nil {
		return err
	}
	_, err = s.repo.Update(ctx, userID, id, fields)
	return err
}

// Complete marks the owned task done. Tasks due after today are rejected.
func (s *TaskService) Complete(ctx context.Context, userID, id int64) error {
	today := s.Today()
	matched, err := s.repo.Complete(ctx, userID, id, today)
	if err != nil || matched {
		return err
	}
	// Nothing matched: either the task is not ours or it is due later.
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}
	if t.DueDate.After(today) {
		return invalid("due_date", "cannot complete a task that is due in the future")
	}
	return nil
}

// Uncomplete marks the owned task not done.
func (s *TaskService) Uncomplete(ctx context.Context, userID, id int64) error {
	_, err := s.repo.Uncomplete(ctx, userID, id)
	return err
}

// Delete removes the owned task.
func (s *TaskService) Delete(ctx context.Context, userID, id int64) error {
	_, err := s.repo.Delete(ctx, userID, id)
	return err
}

func (s *TaskService) validate(in TaskInput) (dom.Task, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return dom.Task{}, invalid("task", "task text is required")
	}
	priority, err := dom.ParsePriority(in.Priority)
	if err != nil {
		return dom.Task{}, invalid("priority", "priority must be low, medium or high")
	}
	if strings.TrimSpace(in.DueDate) == "" {
		return dom.Task{}, invalid("due_date", "due date is required")
	}
	due, err := dom.ParseDate(in.DueDate)
	if err != nil {
		return dom.Task{}, invalid("due_date", "due date must be YYYY-MM-DD")
	}
	if due.Before(s.Today()) {
		return dom.Task{}, invalid("due_date", "due date cannot be in the past")
	}
	return dom.Task{Text: text, Priority: priority, DueDate: due}, nil
}
