package domain

import (
	"fmt"
	"strings"
	"time"
)

// Task is a to-do item owned by exactly one user.
// Не зависит от Gin, SQLite, Redis.
type Task struct {
	ID        int64
	UserID    int64
	Text      string
	Completed bool
	Priority  Priority
	DueDate   time.Time // calendar date, midnight UTC
	CreatedAt time.Time
}

// Priority is one of the recognized task priorities.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the recognized priorities in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority maps s onto the recognized set. Empty input yields the
// default (medium); anything else unrecognized is an error.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("unknown priority %q", s)
	}
}

func (p Priority) String() string { return string(p) }

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// DateOf truncates t to its calendar date in t's own location and
// returns that date as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// Stats summarizes a task list for the dashboard.
type Stats struct {
	Total     int
	Completed int
	Pending   int
}

// Summarize counts tasks in memory.
func Summarize(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}
