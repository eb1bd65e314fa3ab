package page

import (
	"errors"
	"net/http"
	"time"

	"rss-reader/internal/domain/entity"
	"rss-reader/internal/observability/metrics"
	"rss-reader/internal/usecase/reader"
)

// ReaderHandler serves reader.html?id=…
//
// Without an id it redirects to the list. A missing article answers 404 and
// an upstream failure 502, both with a rendered page.
type ReaderHandler struct{ Deps }

func (h ReaderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	view := h.Renderer.NewReaderPage()
	ctrl := reader.Controller{
		Source:    h.Source,
		Sanitizer: h.Sanitizer,
		View:      view,
		SiteName:  h.Renderer.SiteName(),
		Logger:    h.Logger,
	}

	// fetch failures are already shown by the view and logged by the controller
	err := ctrl.Load(r.Context(), r.URL.Query())
	metrics.RecordReaderRender(view.Outcome().String(), view.PlainText(), time.Since(start))

	if errors.Is(err, entity.ErrMissingArticleID) {
		http.Redirect(w, r, view.RedirectLocation(), http.StatusFound)
		return
	}
	writeHTML(w, view.Status(), h.Logger, view.Write)
}
