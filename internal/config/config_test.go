package config

import (
	"os"
	"testing"
	"time"
)

// clearEnv unsets the variables Load reads so defaults apply, restoring
// them when the test ends.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "APP_TIMEZONE", "DB_PATH", "RENDER", "SESSION_STORE", "SESSION_TTL",
		"REDIS_ADDR", "REDIS_URL", "REDIS_PASSWORD", "REDIS_DB", "HTTP_READ_TIMEOUT",
	} {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, v) })
		}
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Path != "tasks.db" {
		t.Errorf("DB.Path = %q, want tasks.db", cfg.DB.Path)
	}
	if cfg.Session.Store != SessionStoreSQLite {
		t.Errorf("Session.Store = %q", cfg.Session.Store)
	}
	if cfg.Session.TTL.Duration() != 24*time.Hour {
		t.Errorf("Session.TTL = %v", cfg.Session.TTL.Duration())
	}
	if cfg.HTTP.ReadTimeout.Duration() != 10*time.Second {
		t.Errorf("HTTP.ReadTimeout = %v", cfg.HTTP.ReadTimeout.Duration())
	}
	if !cfg.App.IsDev() {
		t.Error("default env is not dev")
	}
}

func TestLoadHostedPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("RENDER", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Path != "/tmp/tasks.db" {
		t.Errorf("DB.Path = %q, want /tmp/tasks.db", cfg.DB.Path)
	}

	t.Setenv("DB_PATH", "/data/custom.db")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Path != "/data/custom.db" {
		t.Errorf("DB.Path = %q, want explicit DB_PATH", cfg.DB.Path)
	}
}

func TestLoadBareSecondsDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_READ_TIMEOUT", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.ReadTimeout.Duration() != 15*time.Second {
		t.Errorf("HTTP.ReadTimeout = %v, want 15s", cfg.HTTP.ReadTimeout.Duration())
	}
}

func TestLoadRedisSessionStore(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_STORE", "redis")

	if _, err := Load(); err == nil {
		t.Fatal("Load without Redis address succeeded")
	}

	t.Setenv("REDIS_URL", "redis://:pw@cache:6379/3")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Redis.Addr != "cache:6379" || cfg.Redis.Password != "pw" || cfg.Redis.DB != 3 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_STORE", "memcached")
	if _, err := Load(); err == nil {
		t.Error("unknown SESSION_STORE accepted")
	}

	clearEnv(t)
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")
	if _, err := Load(); err == nil {
		t.Error("unknown APP_TIMEZONE accepted")
	}
}
