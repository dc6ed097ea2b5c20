// Package views holds the Fyyur HTML templates and their helper functions.
package views

import (
	"embed"
	"html/template"
	"strings"

	"github.com/farellandr/fyyur/internal/models"
)

//go:embed templates
var templateFS embed.FS

const (
	fullLayout   = "Monday January, 2, 2006 at 3:04PM"
	mediumLayout = "Mon 01, 02, 2006 3:04PM"
)

// FormatDateTime renders a stored show time in the "full" or "medium" style.
// Values that cannot be parsed are returned unchanged.
func FormatDateTime(value string, format ...string) string {
	t, err := models.ParseShowTime(value)
	if err != nil {
		return value
	}
	layout := mediumLayout
	if len(format) > 0 && format[0] == "full" {
		layout = fullLayout
	}
	return t.Format(layout)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

var funcs = template.FuncMap{
	"datetime": FormatDateTime,
	"contains": contains,
	"join":     strings.Join,
}

// Load parses every template. Templates are addressed by file name, so names
// must be unique across directories.
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS,
		"templates/layouts/*.html",
		"templates/pages/*.html",
		"templates/forms/*.html",
		"templates/errors/*.html",
	)
}
