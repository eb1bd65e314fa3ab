// Package page serves the HTML pages: the article list, its pagination
// fragment, the reader and the embedded static assets. Every request gets its
// own controller and view.
package page

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"rss-reader/internal/handler/http/respond"
	"rss-reader/internal/render"
	"rss-reader/internal/usecase/listing"
	"rss-reader/internal/usecase/reader"
)

// ScrollHeader tells app.js to scroll to the top after swapping a fragment.
const ScrollHeader = "X-Scroll-Top"

// ArticleSource is the API client as seen by both pages.
type ArticleSource interface {
	listing.ArticleSource
	reader.ArticleSource
}

// Deps are the shared, concurrency-safe collaborators of the page handlers.
type Deps struct {
	Source          ArticleSource
	Sanitizer       reader.Sanitizer
	Renderer        *render.Renderer
	MaxVisiblePages int
	Logger          *slog.Logger
}

// Register registers the page routes with the given mux.
func Register(mux *http.ServeMux, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	list := ListHandler{deps}
	mux.Handle("GET /{$}", list)
	mux.Handle("GET /index.html", list)
	mux.Handle("GET /partials/articles", FragmentHandler{deps})
	mux.Handle("GET /reader.html", ReaderHandler{deps})
	mux.Handle("GET /static/", http.StripPrefix("/static", render.StaticHandler()))
}

// writeHTML renders into a buffer first so a template failure can still be
// answered with a 500 instead of a truncated page.
func writeHTML(w http.ResponseWriter, status int, logger *slog.Logger, renderFn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := renderFn(&buf); err != nil {
		logger.Error("failed to render page", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
