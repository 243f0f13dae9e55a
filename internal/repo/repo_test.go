package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"TaskTracker/internal/db/dbtest"
	dom "TaskTracker/internal/domain"
	"TaskTracker/internal/utils"
)

var created = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dom.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func newUser(t *testing.T, users *SQLiteUserRepo, name string) dom.User {
	t.Helper()
	u, err := users.Create(context.Background(), dom.User{
		Username: name, Email: name + "@x.com", PasswordHash: "hash", CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func TestUserRepoCreateAndGet(t *testing.T) {
	users := NewSQLiteUserRepo(dbtest.Open(t))
	ctx := context.Background()

	alice := newUser(t, users, "alice")
	if alice.ID == 0 {
		t.Fatal("Create did not assign an id")
	}

	byName, err := users.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if byName.ID != alice.ID || byName.Email != alice.Email || byName.PasswordHash != "hash" {
		t.Errorf("GetByUsername = %+v, want %+v", byName, alice)
	}
	byID, err := users.GetByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != "alice@x.com" || !byID.CreatedAt.Equal(created) {
		t.Errorf("GetByID = %+v", byID)
	}

	if _, err := users.GetByUsername(ctx, "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByUsername(bob) = %v, want ErrNotFound", err)
	}
}

func TestUserRepoUniqueViolation(t *testing.T) {
	users := NewSQLiteUserRepo(dbtest.Open(t))
	ctx := context.Background()
	newUser(t, users, "alice")

	tests := []struct {
		name   string
		user   dom.User
		column string
	}{
		{"username", dom.User{Username: "alice", Email: "other@x.com", PasswordHash: "h"}, "users.username"},
		{"email", dom.User{Username: "other", Email: "alice@x.com", PasswordHash: "h"}, "users.email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := users.Create(ctx, tt.user)
			column, ok := utils.UniqueViolation(err)
			if !ok {
				t.Fatalf("Create error = %v, want unique violation", err)
			}
			if column != tt.column {
				t.Errorf("column = %q, want %q", column, tt.column)
			}
		})
	}
}

func TestTaskRepoListOrderAndFilter(t *testing.T) {
	pool := dbtest.Open(t)
	users := NewSQLiteUserRepo(pool)
	tasks := NewSQLiteTaskRepo(pool)
	ctx := context.Background()
	alice := newUser(t, users, "alice")

	add := func(text, due string, at time.Time) dom.Task {
		t.Helper()
		task, err := tasks.Create(ctx, dom.Task{
			UserID: alice.ID, Text: text, Priority: dom.PriorityMedium, DueDate: mustDate(t, due), CreatedAt: at,
		})
		if err != nil {
			t.Fatalf("Create %s: %v", text, err)
		}
		return task
	}
	add("later", "2025-03-01", created)
	add("first-old", "2025-02-01", created)
	add("first-new", "2025-02-01", created.Add(time.Hour))

	list, err := tasks.List(ctx, alice.ID, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var got []string
	for _, task := range list {
		got = append(got, task.Text)
	}
	want := []string{"first-new", "first-old", "later"}
	if len(got) != len(want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	day := mustDate(t, "2025-03-01")
	filtered, err := tasks.List(ctx, alice.ID, &day)
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Text != "later" {
		t.Errorf("List(2025-03-01) = %+v", filtered)
	}
}

func TestTaskRepoOwnerScoping(t *testing.T) {
	pool := dbtest.Open(t)
	users := NewSQLiteUserRepo(pool)
	tasks := NewSQLiteTaskRepo(pool)
	ctx := context.Background()
	alice := newUser(t, users, "alice")
	bob := newUser(t, users, "bob")

	task, err := tasks.Create(ctx, dom.Task{
		UserID: alice.ID, Text: "secret", Priority: dom.PriorityHigh, DueDate: mustDate(t, "2025-01-01"), CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := tasks.GetByID(ctx, bob.ID, task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID as bob = %v, want ErrNotFound", err)
	}
	if list, _ := tasks.List(ctx, bob.ID, nil); len(list) != 0 {
		t.Errorf("bob sees %d tasks", len(list))
	}
	checks := map[string]func() (bool, error){
		"Update": func() (bool, error) {
			return tasks.Update(ctx, bob.ID, task.ID, dom.Task{Text: "x", Priority: dom.PriorityLow, DueDate: task.DueDate})
		},
		"Complete":   func() (bool, error) { return tasks.Complete(ctx, bob.ID, task.ID, mustDate(t, "2030-01-01")) },
		"Uncomplete": func() (bool, error) { return tasks.Uncomplete(ctx, bob.ID, task.ID) },
		"Delete":     func() (bool, error) { return tasks.Delete(ctx, bob.ID, task.ID) },
	}
	for name, fn := range checks {
		matched, err := fn()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if matched {
			t.Errorf("%s as bob matched alice's task", name)
		}
	}

	got, err := tasks.GetByID(ctx, alice.ID, task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Text != "secret" || got.Completed {
		t.Errorf("alice's task was modified: %+v", got)
	}
}

func TestTaskRepoCompleteRespectsDueDate(t *testing.T) {
	pool := dbtest.Open(t)
	tasks := NewSQLiteTaskRepo(pool)
	ctx := context.Background()
	alice := newUser(t, NewSQLiteUserRepo(pool), "alice")

	task, err := tasks.Create(ctx, dom.Task{
		UserID: alice.ID, Text: "t", Priority: dom.PriorityLow, DueDate: mustDate(t, "2025-06-10"), CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if matched, _ := tasks.Complete(ctx, alice.ID, task.ID, mustDate(t, "2025-06-09")); matched {
		t.Error("Complete before due date matched")
	}
	for i := 0; i < 2; i++ {
		matched, err := tasks.Complete(ctx, alice.ID, task.ID, mustDate(t, "2025-06-10"))
		if err != nil || !matched {
			t.Fatalf("Complete #%d = (%v, %v), want (true, nil)", i+1, matched, err)
		}
	}
	got, _ := tasks.GetByID(ctx, alice.ID, task.ID)
	if !got.Completed {
		t.Error("task not completed")
	}
	if matched, _ := tasks.Uncomplete(ctx, alice.ID, task.ID); !matched {
		t.Error("Uncomplete did not match")
	}
	got, _ = tasks.GetByID(ctx, alice.ID, task.ID)
	if got.Completed {
		t.Error("task still completed after Uncomplete")
	}
}

func TestSessionRepoExpiry(t *testing.T) {
	pool := dbtest.Open(t)
	sessions := NewSQLiteSessionRepo(pool)
	ctx := context.Background()
	alice := newUser(t, NewSQLiteUserRepo(pool), "alice")

	now := created
	if err := sessions.Create(ctx, "live", alice.ID, now.Add(time.Hour)); err != nil {
		t.Fatalf("Create live: %v", err)
	}
	if err := sessions.Create(ctx, "stale", alice.ID, now.Add(-time.Minute)); err != nil {
		t.Fatalf("Create stale: %v", err)
	}

	if id, ok, err := sessions.GetUserID(ctx, "live", now); err != nil || !ok || id != alice.ID {
		t.Errorf("GetUserID(live) = (%d, %v, %v)", id, ok, err)
	}
	if _, ok, _ := sessions.GetUserID(ctx, "stale", now); ok {
		t.Error("expired session resolved")
	}

	n, err := sessions.PurgeExpired(ctx, now)
	if err != nil || n != 1 {
		t.Errorf("PurgeExpired = (%d, %v), want (1, nil)", n, err)
	}

	if err := sessions.Delete(ctx, "live"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := sessions.GetUserID(ctx, "live", now); ok {
		t.Error("deleted session resolved")
	}
	if err := sessions.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}
