package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"TaskTracker/internal/clock"
	"TaskTracker/internal/db/dbtest"
	"TaskTracker/internal/repo"
	"TaskTracker/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pool := dbtest.Open(t)
	clk := clock.Fixed(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	sessions := NewSQLiteStore(repo.NewSQLiteSessionRepo(pool), clk, time.Hour, nil)
	users := service.NewUserService(repo.NewSQLiteUserRepo(pool), sessions, clk, bcrypt.MinCost)

	ctx := context.Background()
	if _, err := users.Register(ctx, "alice", "a@x.com", "secret1", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, sessionID, err := users.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	r := gin.New()
	r.Use(LoadUser(users))
	whoami := func(c *gin.Context) {
		u, _ := CurrentUser(c)
		c.String(http.StatusOK, u.Username)
	}
	r.GET("/page", RequirePage(), whoami)
	r.GET("/api", RequireAPI(), whoami)
	return r, sessionID
}

func TestRequirePage(t *testing.T) {
	r, sessionID := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Errorf("anonymous: status %d location %q, want 302 /login", w.Code, w.Header().Get("Location"))
	}

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "alice" {
		t.Errorf("authenticated: status %d body %q", w.Code, w.Body.String())
	}
}

func TestRequireAPI(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("forged session: status %d, want 401", w.Code)
	}
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("stale session cookie was not cleared")
	}
}
