package handlers

import (
	"context"
	"errors"
	"net/http"

	"TaskTracker/internal/auth"
	dom "TaskTracker/internal/domain"
	"TaskTracker/internal/dto"
	"TaskTracker/internal/flash"
	"TaskTracker/internal/service"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the server-rendered HTML pages. Every form post
// ends in a redirect; problems are reported through a flash notice.
type PageHandler struct {
	users        *service.UserService
	tasks        *service.TaskService
	cookieMaxAge int
	cookieSecure bool
}

func NewPageHandler(users *service.UserService, tasks *service.TaskService, cookieMaxAge int, cookieSecure bool) *PageHandler {
	return &PageHandler{users: users, tasks: tasks, cookieMaxAge: cookieMaxAge, cookieSecure: cookieSecure}
}

// render adds the values every layout needs: the current user and a
// pending flash notice.
func (h *PageHandler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if u, ok := auth.CurrentUser(c); ok {
		data["User"] = u
	}
	if m, ok := flash.Pop(c); ok {
		data["Flash"] = m
	}
	c.HTML(status, name, data)
}

// fail reports err to the user. Validation, conflict and credential
// errors become a flash on the redirect target; anything else is a 500.
func (h *PageHandler) fail(c *gin.Context, err error, redirect string) {
	if errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrConflict) || errors.Is(err, service.ErrAuth) {
		flash.Set(c, flash.Error, err.Error())
		c.Redirect(http.StatusFound, redirect)
		return
	}
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, "Internal Server Error")
}

func (h *PageHandler) Index(c *gin.Context) {
	if _, ok := auth.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	h.render(c, http.StatusOK, "index.html", nil)
}

func (h *PageHandler) RegisterForm(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", nil)
}

func (h *PageHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Set(c, flash.Error, "Please check the registration form.")
		c.Redirect(http.StatusFound, "/register")
		return
	}
	if _, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword); err != nil {
		h.fail(c, err, "/register")
		return
	}
	flash.Set(c, flash.Success, "Registration successful. Please log in.")
	c.Redirect(http.StatusFound, "/login")
}

func (h *PageHandler) LoginForm(c *gin.Context) {
	if _, ok := auth.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	h.render(c, http.StatusOK, "login.html", nil)
}

func (h *PageHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	_ = c.ShouldBind(&req)
	_, sessionID, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(c, err, "/login")
		return
	}
	auth.SetSessionCookie(c, sessionID, h.cookieMaxAge, h.cookieSecure)
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *PageHandler) Logout(c *gin.Context) {
	if err := h.users.Logout(c.Request.Context(), auth.SessionID(c)); err != nil {
		_ = c.Error(err)
	}
	auth.ClearSessionCookie(c)
	flash.Set(c, flash.Info, "You have been logged out.")
	c.Redirect(http.StatusFound, "/")
}

// Dashboard lists the user's tasks, optionally filtered by ?date, next
// to today's tasks and the completion counts of the listed ones.
func (h *PageHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	date, err := parseDateQuery(c, "date")
	if err != nil {
		h.fail(c, err, "/dashboard")
		return
	}
	list, err := h.tasks.List(ctx, uid, date)
	if err != nil {
		h.fail(c, err, "/dashboard")
		return
	}
	today, err := h.tasks.ListToday(ctx, uid)
	if err != nil {
		h.fail(c, err, "/dashboard")
		return
	}

	data := gin.H{
		"Tasks":      list,
		"TodayTasks": today,
		"Stats":      dom.Summarize(list),
		"Today":      h.tasks.Today(),
		"Priorities": dom.Priorities,
		"FilterDate": "",
	}
	if date != nil {
		data["FilterDate"] = dom.FormatDate(*date)
	}
	h.render(c, http.StatusOK, "dashboard.html", data)
}

func (h *PageHandler) Add(c *gin.Context) {
	var form dto.TaskForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Set(c, flash.Error, "Task text is too long.")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	if _, err := h.tasks.Add(c.Request.Context(), userID(c), toInput(form)); err != nil {
		h.fail(c, err, "/dashboard")
		return
	}
	flash.Set(c, flash.Success, "Task added.")
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *PageHandler) Edit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	var form dto.TaskForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Set(c, flash.Error, "Task text is too long.")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	if err := h.tasks.Edit(c.Request.Context(), userID(c), id, toInput(form)); err != nil {
		h.fail(c, err, "/dashboard")
		return
	}
	flash.Set(c, flash.Success, "Task updated.")
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *PageHandler) Complete(c *gin.Context) {
	h.mutate(c, h.tasks.Complete)
}

func (h *PageHandler) Uncomplete(c *gin.Context) {
	h.mutate(c, h.tasks.Uncomplete)
}

func (h *PageHandler) Delete(c *gin.Context) {
	h.mutate(c, h.tasks.Delete)
}

func (h *PageHandler) mutate(c *gin.Context, op func(ctx context.Context, userID, id int64) error) {
	id, ok := parseID(c, "id")
	if !ok {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	if err := op(c.Request.Context(), userID(c), id); err != nil {
		h.fail(c, err, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}
