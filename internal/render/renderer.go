// Package render is the template-rendering collaborator for the site
// publisher: a named template plus a flat data bag in, final markup out.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer produces final page text from a template name and a data bag.
// Values that must land unescaped (pre-built meta tags, JSON-LD) are passed
// as template.HTML / template.JS by the caller.
type Renderer interface {
	Render(name string, data map[string]any) (string, error)
}

// TemplateRenderer renders the embedded site templates.
type TemplateRenderer struct {
	tmpl *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

func (r *TemplateRenderer) Render(name string, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
