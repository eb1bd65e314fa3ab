package pagination_test

import (
	"net/http/httptest"
	"testing"

	"rss-reader/internal/common/pagination"
)

func TestParsePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  int
	}{
		{query: "", want: 1},
		{query: "?page=4", want: 4},
		{query: "?page=0", want: 1},
		{query: "?page=-2", want: 1},
		{query: "?page=abc", want: 1},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/index.html"+tt.query, nil)
		if got := pagination.ParsePage(req); got != tt.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestParseNavigationParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		want      pagination.NavigationParams
		wantError bool
	}{
		{
			name:  "valid",
			query: "?page=3&current=2&total=9",
			want:  pagination.NavigationParams{Target: 3, State: pagination.State{CurrentPage: 2, TotalPages: 9}},
		},
		{
			name:  "out of range target is accepted",
			query: "?page=99&current=2&total=9",
			want:  pagination.NavigationParams{Target: 99, State: pagination.State{CurrentPage: 2, TotalPages: 9}},
		},
		{name: "missing page", query: "?current=1&total=2", wantError: true},
		{name: "missing total", query: "?page=1&current=1", wantError: true},
		{name: "zero total", query: "?page=1&current=1&total=0", wantError: true},
		{name: "current above total", query: "?page=1&current=5&total=4", wantError: true},
		{name: "current zero", query: "?page=1&current=0&total=4", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/partials/articles"+tt.query, nil)
			got, err := pagination.ParseNavigationParams(req)
			if tt.wantError {
				if err == nil {
					t.Fatalf("ParseNavigationParams(%q) error = nil, want error", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNavigationParams(%q) error = %v", tt.query, err)
			}
			if got != tt.want {
				t.Errorf("ParseNavigationParams(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}
