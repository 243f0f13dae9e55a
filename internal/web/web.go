// Package web holds the embedded HTML templates.
package web

import (
	"embed"
	"html/template"
	"time"

	dom "TaskTracker/internal/domain"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the page templates. Each page is addressed by its
// file name, e.g. "dashboard.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"formatDate": dom.FormatDate,
		"isToday": func(d, today time.Time) bool {
			return d.Equal(today)
		},
		"isFuture": func(d, today time.Time) bool {
			return d.After(today)
		},
	}).ParseFS(files, "templates/*.html")
}
