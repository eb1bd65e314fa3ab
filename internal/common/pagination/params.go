package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// NavigationParams is a pagination request sent by the list page when a
// control is clicked: the target page plus the state the page was rendered with.
type NavigationParams struct {
	Target int
	State  State
}

// ParsePage reads the optional "page" query parameter of a full list page
// request. Missing or malformed values resolve to page 1.
func ParsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParseNavigationParams parses the query of an in-place navigation request:
//   - page: target page (required integer)
//   - current: page currently displayed (required, 1 <= current <= total)
//   - total: total number of pages (required positive integer)
//
// The target is not range checked here; out-of-range targets are a no-op
// decided by the list controller.
func ParseNavigationParams(r *http.Request) (NavigationParams, error) {
	q := r.URL.Query()

	target, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		return NavigationParams{}, fmt.Errorf("invalid query parameter: page must be an integer")
	}

	total, err := strconv.Atoi(q.Get("total"))
	if err != nil || total < 1 {
		return NavigationParams{}, fmt.Errorf("invalid query parameter: total must be a positive integer")
	}

	current, err := strconv.Atoi(q.Get("current"))
	if err != nil || current < 1 || current > total {
		return NavigationParams{}, fmt.Errorf("invalid query parameter: current must be between 1 and %d", total)
	}

	return NavigationParams{
		Target: target,
		State:  State{CurrentPage: current, TotalPages: total},
	}, nil
}
