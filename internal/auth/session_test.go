package auth

import (
	"context"
	"testing"
	"time"

	"TaskTracker/internal/clock"
	"TaskTracker/internal/db/dbtest"
	dom "TaskTracker/internal/domain"
	"TaskTracker/internal/repo"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewRedisStore(rdb, time.Hour)
	ctx := context.Background()

	id, err := store.Create(ctx, 42)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("session id %q, want 32 hex chars", id)
	}
	if ttl := mr.TTL(sessionKeyPrefix + id); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	userID, ok, err := store.GetUserID(ctx, id)
	if err != nil || !ok || userID != 42 {
		t.Fatalf("GetUserID = (%d, %v, %v), want (42, true, nil)", userID, ok, err)
	}

	mr.FastForward(2 * time.Hour)
	if _, ok, err := store.GetUserID(ctx, id); err != nil || ok {
		t.Errorf("GetUserID after expiry = (%v, %v), want (false, nil)", ok, err)
	}

	id, _ = store.Create(ctx, 7)
	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.GetUserID(ctx, id); ok {
		t.Error("deleted session resolved")
	}
	if err := store.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestSQLiteStoreExpiry(t *testing.T) {
	pool := dbtest.Open(t)
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	u, err := repo.NewSQLiteUserRepo(pool).Create(ctx, dom.User{
		Username: "alice", Email: "a@x.com", PasswordHash: "h", CreatedAt: start,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	sessions := repo.NewSQLiteSessionRepo(pool)

	store := NewSQLiteStore(sessions, clock.Fixed(start), time.Hour, nil)
	id, err := store.Create(ctx, u.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got, ok, err := store.GetUserID(ctx, id); err != nil || !ok || got != u.ID {
		t.Fatalf("GetUserID = (%d, %v, %v)", got, ok, err)
	}

	later := NewSQLiteStore(sessions, clock.Fixed(start.Add(2*time.Hour)), time.Hour, nil)
	if _, ok, _ := later.GetUserID(ctx, id); ok {
		t.Error("expired session resolved")
	}

	// Creating a new session purges the expired one.
	if _, err := later.Create(ctx, u.ID); err != nil {
		t.Fatalf("Create later: %v", err)
	}
	if _, ok, _ := store.GetUserID(ctx, id); ok {
		t.Error("expired session survived purge")
	}
}
