package handlers

import (
	"context"
	"net/http"

	"TaskTracker/internal/auth"
	dom "TaskTracker/internal/domain"
	"TaskTracker/internal/dto"
	"TaskTracker/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler serves the JSON task endpoints. Routes are mounted behind
// auth.RequireAPI, so a current user is always present.
type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

func userID(c *gin.Context) int64 {
	u, _ := auth.CurrentUser(c)
	return u.ID
}

// List godoc
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        date  query     string  false  "Only tasks due on this date (YYYY-MM-DD)"
// @Success      200   {object}  dto.ListTasksResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		writeAPIError(c, err)
		return
	}
	list, err := h.svc.List(c.Request.Context(), userID(c), date)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTasksResponse{Items: tasksToResponses(list)})
}

// Today godoc
// @Summary      List tasks due today
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListTasksResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks/today [get]
func (h *TaskHandler) Today(c *gin.Context) {
	list, err := h.svc.ListToday(c.Request.Context(), userID(c))
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTasksResponse{Items: tasksToResponses(list)})
}

// Stats godoc
// @Summary      Task counts
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        date  query     string  false  "Only tasks due on this date (YYYY-MM-DD)"
// @Success      200   {object}  dto.StatsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /tasks/stats [get]
func (h *TaskHandler) Stats(c *gin.Context) {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		writeAPIError(c, err)
		return
	}
	list, err := h.svc.List(c.Request.Context(), userID(c), date)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	s := dom.Summarize(list)
	c.JSON(http.StatusOK, dto.StatsResponse{Total: s.Total, Completed: s.Completed, Pending: s.Pending})
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.TaskForm  true  "Task"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.TaskForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	t, err := h.svc.Add(c.Request.Context(), userID(c), toInput(req))
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(t))
}

// Update godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Security     CookieAuth
// @Param        id    path  int           true  "Task ID"
// @Param        body  body  dto.TaskForm  true  "Task"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	var req dto.TaskForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.svc.Edit(c.Request.Context(), userID(c), id, toInput(req)); err != nil {
		writeAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Complete godoc
// @Summary      Mark a task as done
// @Tags         tasks
// @Security     CookieAuth
// @Param        id   path  int  true  "Task ID"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	h.mutate(c, h.svc.Complete)
}

// Uncomplete godoc
// @Summary      Mark a task as not done
// @Tags         tasks
// @Security     CookieAuth
// @Param        id   path  int  true  "Task ID"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks/{id}/uncomplete [post]
func (h *TaskHandler) Uncomplete(c *gin.Context) {
	h.mutate(c, h.svc.Uncomplete)
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Security     CookieAuth
// @Param        id   path  int  true  "Task ID"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	h.mutate(c, h.svc.Delete)
}

func (h *TaskHandler) mutate(c *gin.Context, op func(ctx context.Context, userID, id int64) error) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	if err := op(c.Request.Context(), userID(c), id); err != nil {
		writeAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) id(c *gin.Context) (int64, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid id"})
	}
	return id, ok
}
