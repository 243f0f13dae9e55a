package auth

import (
	"context"
	"io"
	"log/slog"
	"time"

	"TaskTracker/internal/clock"
	"TaskTracker/internal/repo"
)

// SQLiteStore keeps sessions in the application database.
// Expired rows are ignored on lookup and purged when new sessions start.
type SQLiteStore struct {
	repo   *repo.SQLiteSessionRepo
	clock  clock.Clock
	ttl    time.Duration
	logger *slog.Logger
}

func NewSQLiteStore(r *repo.SQLiteSessionRepo, clk clock.Clock, ttl time.Duration, logger *slog.Logger) *SQLiteStore {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SQLiteStore{repo: r, clock: clk, ttl: ttl, logger: logger}
}

func (s *SQLiteStore) Create(ctx context.Context, userID int64) (string, error) {
	now := s.clock.Now()
	if n, err := s.repo.PurgeExpired(ctx, now); err != nil {
		s.logger.Warn("purge expired sessions", "error", err)
	} else if n > 0 {
		s.logger.Debug("purged expired sessions", "count", n)
	}

	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	if err := s.repo.Create(ctx, id, userID, now.Add(s.ttl)); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLiteStore) GetUserID(ctx context.Context, id string) (int64, bool, error) {
	return s.repo.GetUserID(ctx, id, s.clock.Now())
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
