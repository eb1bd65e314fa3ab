// Package sanitize prepares article markup from the API for display in the reader.
package sanitize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrSanitize is returned when the markup could not be processed. Callers fall
// back to rendering the raw content as text.
var ErrSanitize = errors.New("failed to sanitize article content")

// ImageErrorHandler hides an image that failed to load.
const ImageErrorHandler = "this.style.display='none'"

// Sanitizer applies the reader's content rules:
//   - every script element is removed
//   - every link opens in a new tab with rel="noopener noreferrer"
//   - every image hides itself when it fails to load
//
// Anything else passes through unchanged. Sanitizer is stateless and safe for
// concurrent use.
type Sanitizer struct{}

// New returns a Sanitizer.
func New() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize parses markup as the children of a div, applies the rules and
// serializes the result.
func (s *Sanitizer) Sanitize(markup string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%w: %v", ErrSanitize, r)
		}
	}()

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSanitize, err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	doc := goquery.NewDocumentFromNode(root)
	doc.Find("script").Remove()
	doc.Find("a").
		SetAttr("target", "_blank").
		SetAttr("rel", "noopener noreferrer")
	doc.Find("img").SetAttr("onerror", ImageErrorHandler)

	out, err = doc.Html()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSanitize, err)
	}
	return out, nil
}
