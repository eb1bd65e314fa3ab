package pagination

import "strconv"

// DefaultMaxVisiblePages is the width of the page-number window.
const DefaultMaxVisiblePages = 5

// ItemKind identifies the role of a control in the pagination strip.
type ItemKind int

const (
	KindPrev ItemKind = iota
	KindFirst
	KindEllipsis
	KindPage
	KindLast
	KindNext
)

// String returns the lowercase name of the kind, used as a CSS hook.
func (k ItemKind) String() string {
	switch k {
	case KindPrev:
		return "prev"
	case KindFirst:
		return "first"
	case KindEllipsis:
		return "ellipsis"
	case KindPage:
		return "page"
	case KindLast:
		return "last"
	case KindNext:
		return "next"
	default:
		return "unknown"
	}
}

// Item is one control of the pagination strip.
// Page is the navigation target; it is 0 for ellipsis markers.
type Item struct {
	Kind     ItemKind
	Page     int
	Label    string
	Active   bool
	Disabled bool
}

// Strip is the ordered list of controls rendered below the article grid.
type Strip struct {
	CurrentPage int
	TotalPages  int
	Items       []Item
}

// Pages returns the page numbers of the visible window, in order.
func (s Strip) Pages() []int {
	var pages []int
	for _, it := range s.Items {
		if it.Kind == KindPage {
			pages = append(pages, it.Page)
		}
	}
	return pages
}

// Window returns the first and last page of the window of at most maxVisible
// consecutive pages centered on the current page.
func Window(state State, maxVisible int) (start, end int) {
	if maxVisible < 1 {
		maxVisible = 1
	}
	start = max(1, state.CurrentPage-maxVisible/2)
	end = min(state.TotalPages, start+maxVisible-1)
	if end-start+1 < maxVisible {
		start = max(1, end-maxVisible+1)
	}
	return start, end
}

// BuildStrip lays out the pagination controls for state:
//
//	< [1] [...] start..end [...] [total] >
//
// The first/last shortcuts appear only when the window does not include them,
// and the ellipsis only when at least one page is hidden between the shortcut
// and the window. Previous/next are disabled at the extremes.
func BuildStrip(state State, maxVisible int) Strip {
	start, end := Window(state, maxVisible)
	items := make([]Item, 0, end-start+7)

	items = append(items, Item{
		Kind:     KindPrev,
		Page:     state.CurrentPage - 1,
		Label:    "<",
		Disabled: state.IsFirst(),
	})

	if start > 1 {
		items = append(items, Item{Kind: KindFirst, Page: 1, Label: "1"})
		if start > 2 {
			items = append(items, Item{Kind: KindEllipsis, Label: "...", Disabled: true})
		}
	}

	for p := start; p <= end; p++ {
		items = append(items, Item{
			Kind:   KindPage,
			Page:   p,
			Label:  strconv.Itoa(p),
			Active: p == state.CurrentPage,
		})
	}

	if end < state.TotalPages {
		if end < state.TotalPages-1 {
			items = append(items, Item{Kind: KindEllipsis, Label: "...", Disabled: true})
		}
		items = append(items, Item{Kind: KindLast, Page: state.TotalPages, Label: strconv.Itoa(state.TotalPages)})
	}

	items = append(items, Item{
		Kind:     KindNext,
		Page:     state.CurrentPage + 1,
		Label:    ">",
		Disabled: state.IsLast(),
	})

	return Strip{
		CurrentPage: state.CurrentPage,
		TotalPages:  state.TotalPages,
		Items:       items,
	}
}
