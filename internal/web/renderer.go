// Package web holds the embedded HTML templates and the echo.Renderer that
// executes them.
package web

import (
	"embed"
	"encoding/base64"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates. Panics on malformed templates,
// which is a build defect rather than a runtime condition.
func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		// datauri inlines a PNG as an <img> source. template.URL marks the
		// data: scheme as trusted; the bytes come from our own renderer.
		"datauri": func(png []byte) template.URL {
			return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
		},
	}
	return &Renderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")),
	}
}

// Render satisfies the echo.Renderer interface.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
