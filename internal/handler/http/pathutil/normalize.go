// Package pathutil maps request paths onto a fixed set of metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// OtherPath is the label for every path the server does not route.
const OtherPath = "/other"

// knownPaths are routed verbatim.
var knownPaths = map[string]struct{}{
	"/":                  {},
	"/index.html":        {},
	"/reader.html":       {},
	"/partials/articles": {},
	"/health":            {},
	"/live":              {},
	"/metrics":           {},
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/static/[^/]+\.(js|css)$`), Template: "/static/:asset"},
	{Pattern: regexp.MustCompile(`^/static/.*$`), Template: "/static/*"},
}

// NormalizePath normalizes URL paths to prevent metrics label cardinality explosion.
// Routed pages keep their path, embedded assets collapse to a template and
// everything else (scanners, typos) is reported as OtherPath.
//
// Examples:
//
//	NormalizePath("/index.html")            // "/index.html"
//	NormalizePath("/reader.html?id=abc")    // "/reader.html"
//	NormalizePath("/static/app.js")         // "/static/:asset"
//	NormalizePath("/wp-login.php")          // "/other"
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/partials/articles/")    // "/partials/articles"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := knownPaths[path]; ok {
		return path
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return OtherPath
}

// GetExpectedCardinality returns the number of distinct labels NormalizePath can produce.
func GetExpectedCardinality() int {
	return len(knownPaths) + len(pathPatterns) + 1
}
