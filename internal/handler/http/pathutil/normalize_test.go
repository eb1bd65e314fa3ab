package pathutil

import (
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "root", path: "/", expected: "/"},
		{name: "index", path: "/index.html", expected: "/index.html"},
		{name: "index with page", path: "/index.html?page=3", expected: "/index.html"},
		{name: "reader with id", path: "/reader.html?id=abc%2F1", expected: "/reader.html"},
		{name: "fragment", path: "/partials/articles?page=2&current=1&total=9", expected: "/partials/articles"},
		{name: "fragment trailing slash", path: "/partials/articles/", expected: "/partials/articles"},
		{name: "health", path: "/health", expected: "/health"},
		{name: "live", path: "/live", expected: "/live"},
		{name: "metrics", path: "/metrics", expected: "/metrics"},
		{name: "script asset", path: "/static/app.js", expected: "/static/:asset"},
		{name: "style asset", path: "/static/style.css", expected: "/static/:asset"},
		{name: "unknown asset", path: "/static/img/logo.png", expected: "/static/*"},
		{name: "scanner", path: "/wp-login.php", expected: OtherPath},
		{name: "nested unknown", path: "/reader.html/extra", expected: OtherPath},
		{name: "empty", path: "", expected: OtherPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestGetExpectedCardinality(t *testing.T) {
	if got := GetExpectedCardinality(); got != 10 {
		t.Errorf("GetExpectedCardinality() = %d, want 10", got)
	}
}
