// Package csp builds Content-Security-Policy header values.
package csp

import (
	"strings"
)

// Header names.
const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

// directiveOrder fixes the order of directives in the built header so values
// are stable across runs.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"script-src-attr",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"media-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
	"report-uri",
}

// CSPBuilder provides a fluent interface for constructing Content-Security-Policy headers.
//
// Example Usage:
//
//	policy := NewCSPBuilder().
//	    DefaultSrc("'self'").
//	    ImgSrc("'self'", "https:").
//	    Build()
//	// Returns: "default-src 'self'; img-src 'self' https:"
//
// CSPBuilder is not safe for concurrent mutation. Build it once at startup and
// only read from it afterwards.
type CSPBuilder struct {
	directives map[string][]string
	reportOnly bool
}

// NewCSPBuilder creates a builder without directives.
func NewCSPBuilder() *CSPBuilder {
	return &CSPBuilder{directives: make(map[string][]string)}
}

func (b *CSPBuilder) set(directive string, sources []string) *CSPBuilder {
	b.directives[directive] = sources
	return b
}

// DefaultSrc sets the default-src directive, the fallback of every fetch directive.
func (b *CSPBuilder) DefaultSrc(sources ...string) *CSPBuilder { return b.set("default-src", sources) }

// ScriptSrc sets the script-src directive.
func (b *CSPBuilder) ScriptSrc(sources ...string) *CSPBuilder { return b.set("script-src", sources) }

// ScriptSrcAttr sets the script-src-attr directive, which governs inline
// event handler attributes such as onerror.
func (b *CSPBuilder) ScriptSrcAttr(sources ...string) *CSPBuilder {
	return b.set("script-src-attr", sources)
}

// StyleSrc sets the style-src directive.
func (b *CSPBuilder) StyleSrc(sources ...string) *CSPBuilder { return b.set("style-src", sources) }

// ImgSrc sets the img-src directive.
func (b *CSPBuilder) ImgSrc(sources ...string) *CSPBuilder { return b.set("img-src", sources) }

// FontSrc sets the font-src directive.
func (b *CSPBuilder) FontSrc(sources ...string) *CSPBuilder { return b.set("font-src", sources) }

// ConnectSrc sets the connect-src directive (fetch, XMLHttpRequest, WebSocket).
func (b *CSPBuilder) ConnectSrc(sources ...string) *CSPBuilder { return b.set("connect-src", sources) }

// MediaSrc sets the media-src directive.
func (b *CSPBuilder) MediaSrc(sources ...string) *CSPBuilder { return b.set("media-src", sources) }

// FrameAncestors sets the frame-ancestors directive.
func (b *CSPBuilder) FrameAncestors(sources ...string) *CSPBuilder {
	return b.set("frame-ancestors", sources)
}

// FormAction sets the form-action directive.
func (b *CSPBuilder) FormAction(sources ...string) *CSPBuilder { return b.set("form-action", sources) }

// BaseUri sets the base-uri directive.
func (b *CSPBuilder) BaseUri(sources ...string) *CSPBuilder { return b.set("base-uri", sources) }

// ObjectSrc sets the object-src directive.
func (b *CSPBuilder) ObjectSrc(sources ...string) *CSPBuilder { return b.set("object-src", sources) }

// ReportUri sets the report-uri directive.
func (b *CSPBuilder) ReportUri(uri string) *CSPBuilder { return b.set("report-uri", []string{uri}) }

// ReportOnly switches between enforcement and report-only mode.
func (b *CSPBuilder) ReportOnly(enabled bool) *CSPBuilder {
	b.reportOnly = enabled
	return b
}

// Build returns the header value. Directives without sources are skipped and
// an empty builder yields "".
func (b *CSPBuilder) Build() string {
	parts := make([]string, 0, len(b.directives))
	for _, directive := range directiveOrder {
		if sources := b.directives[directive]; len(sources) > 0 {
			parts = append(parts, directive+" "+strings.Join(sources, " "))
		}
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the header the value belongs in for the current mode.
func (b *CSPBuilder) HeaderName() string {
	if b.reportOnly {
		return HeaderReportOnly
	}
	return HeaderEnforce
}

// PagePolicy returns the policy of the HTML pages.
//
// Scripts and styles are served from the same origin. Article bodies embed
// remote images and media, and the image fallback relies on an inline onerror
// attribute, so handler attributes are allowed while script elements are not.
func PagePolicy() *CSPBuilder {
	return NewCSPBuilder().
		DefaultSrc("'self'").
		ScriptSrc("'self'").
		ScriptSrcAttr("'unsafe-inline'").
		StyleSrc("'self'", "'unsafe-inline'").
		ImgSrc("'self'", "data:", "https:", "http:").
		MediaSrc("'self'", "https:", "http:").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		BaseUri("'self'").
		FormAction("'self'").
		ObjectSrc("'none'")
}

// StrictPolicy returns a policy for endpoints that never serve HTML, such as
// the health and metrics endpoints.
func StrictPolicy() *CSPBuilder {
	return NewCSPBuilder().
		DefaultSrc("'none'").
		FrameAncestors("'none'").
		BaseUri("'none'").
		FormAction("'none'")
}
