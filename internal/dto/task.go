package dto

import "time"

// TaskForm is the add/edit form and the JSON body for POST/PUT /tasks.
// Due date is "YYYY-MM-DD"; priority is low, medium or high.
type TaskForm struct {
	Task     string `form:"task" json:"task" binding:"max=500"`
	Priority string `form:"priority" json:"priority"`
	DueDate  string `form:"due_date" json:"due_date"`
}

type TaskResponse struct {
	ID        int64     `json:"id"`
	Task      string    `json:"task"`
	Completed bool      `json:"completed"`
	Priority  string    `json:"priority"`
	DueDate   string    `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
}

type ListTasksResponse struct {
	Items []TaskResponse `json:"items"`
}

type StatsResponse struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
