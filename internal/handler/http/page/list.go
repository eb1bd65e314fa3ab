package page

import (
	"net/http"
	"time"

	"rss-reader/internal/common/pagination"
	"rss-reader/internal/handler/http/respond"
	"rss-reader/internal/observability/metrics"
	"rss-reader/internal/usecase/listing"
)

// ListHandler serves the full article list page.
//
// The optional page query parameter selects the initial page; it is clamped
// into range once the page count is known. An upstream failure still renders
// the page, with the error message in place of the grid, and answers 502.
type ListHandler struct{ Deps }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	view := h.Renderer.NewListPage()
	ctrl := listing.NewController(h.Source, view, h.MaxVisiblePages, h.Logger)
	ctrl.State.CurrentPage = pagination.ParsePage(r)

	status := http.StatusOK
	if err := ctrl.Init(r.Context()); err != nil {
		status = http.StatusBadGateway
	}
	metrics.RecordListRender(metrics.PageList,
		metrics.ListOutcome(view.Failed(), view.ArticleCount()), view.ArticleCount(), time.Since(start))

	writeHTML(w, status, h.Logger, view.WriteFull)
}

// FragmentHandler serves in-place pagination: the article grid and the
// pagination strip for page, given the current and total pages the client
// was showing.
//
// A no-op navigation (same page, out of range) answers 204 without contacting
// the API. A failed fetch answers 502 with only the error grid.
type FragmentHandler struct{ Deps }

func (h FragmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params, err := pagination.ParseNavigationParams(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	view := h.Renderer.NewListPage()
	ctrl := listing.NewController(h.Source, view, h.MaxVisiblePages, h.Logger)
	*ctrl.State = params.State

	navigated, err := ctrl.NavigateTo(r.Context(), params.Target)
	if !navigated {
		metrics.RecordListNoop()
		w.WriteHeader(http.StatusNoContent)
		return
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusBadGateway
	}
	metrics.RecordListRender(metrics.PageFragment,
		metrics.ListOutcome(view.Failed(), view.ArticleCount()), view.ArticleCount(), time.Since(start))

	if view.ScrollRequested() {
		w.Header().Set(ScrollHeader, "smooth")
	}
	writeHTML(w, status, h.Logger, view.WriteFragment)
}
