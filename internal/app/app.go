package app

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"time"

	"TaskTracker/internal/auth"
	"TaskTracker/internal/clock"
	"TaskTracker/internal/config"
	"TaskTracker/internal/db"
	"TaskTracker/internal/repo"
	"TaskTracker/internal/service"
	"TaskTracker/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg    config.Config
	logger *slog.Logger
	db     *db.Pool
	redis  *redis.Client
	router *gin.Engine
}

// New opens the database, applies migrations, sets up the session store
// and builds the router.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	return newApp(cfg, logger, clock.Real())
}

func newApp(cfg config.Config, logger *slog.Logger, clk clock.Clock) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &App{cfg: cfg, logger: logger}

	if err := db.Migrate(cfg.DB.Path); err != nil {
		return nil, err
	}
	pool, err := db.Open(db.Config{Path: cfg.DB.Path, PoolSize: cfg.DB.PoolSize, Logger: logger})
	if err != nil {
		return nil, err
	}
	a.db = pool

	var sessions service.SessionStore
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		rdb, err := newRedis(cfg.Redis)
		if err != nil {
			_ = a.db.Close()
			return nil, err
		}
		a.redis = rdb
		sessions = auth.NewRedisStore(rdb, cfg.Session.TTL.Duration())
	default:
		sessions = auth.NewSQLiteStore(repo.NewSQLiteSessionRepo(pool), clk, cfg.Session.TTL.Duration(), logger)
	}
	logger.Info("session store ready", "store", cfg.Session.Store)

	users := service.NewUserService(repo.NewSQLiteUserRepo(pool), sessions, clk, cfg.Session.BcryptCost)
	tasks := service.NewTaskService(repo.NewSQLiteTaskRepo(pool), clk, cfg.App.Location())

	tmpl, err := web.Templates()
	if err != nil {
		_ = a.closeStores()
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	a.router = newRouter(cfg, logger, tmpl, users, tasks)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	return a.closeStores()
}

func (a *App) closeStores() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func newRouter(cfg config.Config, logger *slog.Logger, tmpl *template.Template, users *service.UserService, tasks *service.TaskService) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery(), corsMiddleware())
	r.SetHTMLTemplate(tmpl)
	r.Use(auth.LoadUser(users))

	Setup(r, cfg, users, tasks)
	return r
}

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Cookie"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	})
}

// requestLogger logs one line per request, plus any errors handlers
// attached with c.Error.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if len(c.Errors) > 0 {
			logger.Error("request failed", append(attrs, "error", c.Errors.String())...)
			return
		}
		logger.Info("request", attrs...)
	}
}
