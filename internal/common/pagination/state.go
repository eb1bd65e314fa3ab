// Package pagination holds the list page's pagination state and the logic that
// turns it into a strip of page controls.
package pagination

import (
	"strconv"
	"strings"
	"unicode"
)

// State is the pagination state of one list page.
// Once initialized it satisfies 1 <= CurrentPage <= TotalPages.
type State struct {
	CurrentPage int
	TotalPages  int
}

// NewState returns the initial state: page 1 of a single page.
func NewState() *State {
	return &State{CurrentPage: 1, TotalPages: 1}
}

// SetTotalPages records the page count reported by the API and clamps the
// current page into the new range. Non-positive counts become 1.
func (s *State) SetTotalPages(total int) {
	if total < 1 {
		total = 1
	}
	s.TotalPages = total
	s.CurrentPage = s.clamp(s.CurrentPage)
}

// Contains reports whether page is inside [1, TotalPages].
func (s *State) Contains(page int) bool {
	return page >= 1 && page <= s.TotalPages
}

// CanNavigate reports whether moving to page would change anything:
// the page must be in range and differ from the current page.
func (s *State) CanNavigate(page int) bool {
	return s.Contains(page) && page != s.CurrentPage
}

// IsFirst reports whether the current page is the first one.
func (s *State) IsFirst() bool { return s.CurrentPage <= 1 }

// IsLast reports whether the current page is the last one.
func (s *State) IsLast() bool { return s.CurrentPage >= s.TotalPages }

func (s *State) clamp(page int) int {
	if page < 1 {
		return 1
	}
	if page > s.TotalPages {
		return s.TotalPages
	}
	return page
}

// ParseTotalPages converts the text of a page_count element into a page count.
//
// The leading integer of the text is used ("12 pages" -> 12). Missing,
// non-numeric, non-positive and overflowing values resolve to 1.
func ParseTotalPages(text string) int {
	n, ok := leadingInt(text)
	if !ok || n < 1 {
		return 1
	}
	return n
}

// leadingInt parses an optionally signed run of decimal digits at the start of
// s, ignoring leading whitespace.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
