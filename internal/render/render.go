// Package render turns controller output into HTML. Templates and static
// assets are embedded in the binary.
//
// Every value reaches the page through html/template, so article fields are
// escaped as text unless the reader marks a body as sanitized markup.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"rss-reader/internal/domain/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer holds the parsed templates. It is safe for concurrent use.
type Renderer struct {
	templates *template.Template
	siteName  string
}

// New parses the embedded templates.
func New(siteName string) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"pageHref": pageHref,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl, siteName: siteName}, nil
}

// SiteName returns the name shown in page headers and titles.
func (r *Renderer) SiteName() string {
	return r.siteName
}

// StaticHandler serves the embedded assets. Mount it under /static/ with the
// prefix stripped.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the embed directive guarantees the directory exists
		panic(err)
	}
	return http.FileServerFS(sub)
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

// pageHref is the no-script link of a pagination control.
func pageHref(page int) string {
	return entity.ListPage + "?" + url.Values{"page": {strconv.Itoa(page)}}.Encode()
}

// datetime formats a parsed publish time for a <time datetime> attribute.
func datetime(t time.Time, ok bool) string {
	if !ok {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}
