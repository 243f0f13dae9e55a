package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	dom "TaskTracker/internal/domain"
	"TaskTracker/internal/dto"
	"TaskTracker/internal/service"

	"github.com/gin-gonic/gin"
)

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
// An absent or empty parameter yields nil.
func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := dom.ParseDate(raw)
	if err != nil {
		return nil, &service.ValidationError{Field: name, Message: "date must be YYYY-MM-DD"}
	}
	return &d, nil
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:        t.ID,
		Task:      t.Text,
		Completed: t.Completed,
		Priority:  t.Priority.String(),
		DueDate:   dom.FormatDate(t.DueDate),
		CreatedAt: t.CreatedAt,
	}
}

func tasksToResponses(list []dom.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}

func userToResponse(u dom.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toInput(f dto.TaskForm) service.TaskInput {
	return service.TaskInput{Text: f.Task, Priority: f.Priority, DueDate: f.DueDate}
}

// writeAPIError maps service errors onto JSON responses.
func writeAPIError(c *gin.Context, err error) {
	var (
		verr *service.ValidationError
		cerr *service.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: verr.Message, Field: verr.Field})
	case errors.As(err, &cerr):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: cerr.Error(), Field: cerr.Field})
	case errors.Is(err, service.ErrAuth):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}
