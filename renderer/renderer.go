// Package renderer turns the views of a collection into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// reports holds every template, named after its file, e.g. "cards.md".
var reports = template.Must(template.ParseFS(templates, "templates/*.md"))

// RenderCards renders the browsable card list to a markdown string.
func RenderCards(c *Cards) string { return render("cards.md", c) }

// RenderCollection renders the owned cards and their value to a markdown string.
func RenderCollection(c *Collection) string { return render("collection.md", c) }

// RenderHealing renders the report of a portfolio healing to a markdown string.
func RenderHealing(h *Healing) string { return render("healing.md", h) }

// render executes a report. Errors are rendered in place of the report.
func render(name string, data any) string {
	var b strings.Builder
	if err := reports.ExecuteTemplate(&b, name, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}
