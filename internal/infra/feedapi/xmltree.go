package feedapi

import (
	"errors"
	"fmt"
	"io"
	"strings"

	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
)

// ErrMalformedXML reports that a response body stopped being well-formed XML.
// Parse still returns everything decoded up to that point.
var ErrMalformedXML = errors.New("malformed XML")

// Element is a node of a decoded response document. Children and character
// data are kept in document order so Text matches the DOM textContent of the
// same element.
type Element struct {
	Name  string
	nodes []node
}

type node struct {
	text string
	elem *Element
}

// Parse reads an XML document into an element tree rooted at an anonymous
// document element. The parser is lenient (HTML entities, unclosed tags) and
// honours the encoding declared in the prolog.
//
// On a syntax error the partial tree is returned together with an error
// wrapping ErrMalformedXML.
func Parse(r io.Reader) (*Element, error) {
	doc := &Element{}
	stack := []*Element{doc}

	p := xpp.NewXMLPullParser(r, false, charset.NewReaderLabel)
	for {
		event, err := p.NextToken()
		if err != nil {
			return doc, fmt.Errorf("%w: %v", ErrMalformedXML, err)
		}

		top := stack[len(stack)-1]
		switch event {
		case xpp.EndDocument:
			return doc, nil
		case xpp.StartTag:
			child := &Element{Name: p.Name}
			top.nodes = append(top.nodes, node{elem: child})
			stack = append(stack, child)
		case xpp.EndTag:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xpp.Text, xpp.IgnorableWhitespace:
			if top != doc {
				top.nodes = append(top.nodes, node{text: p.Text})
			}
		}
	}
}

// Find returns the first descendant named name in document order, or nil.
func (e *Element) Find(name string) *Element {
	if e == nil {
		return nil
	}
	for _, n := range e.nodes {
		if n.elem == nil {
			continue
		}
		if n.elem.Name == name {
			return n.elem
		}
		if found := n.elem.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant named name in document order.
func (e *Element) FindAll(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	e.walk(func(el *Element) {
		if el.Name == name {
			out = append(out, el)
		}
	})
	return out
}

// Text returns the concatenated character data of the element and all of its
// descendants. A nil element has no text.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	e.appendText(&b)
	return b.String()
}

// ChildText is shorthand for e.Find(name).Text().
func (e *Element) ChildText(name string) string {
	return e.Find(name).Text()
}

func (e *Element) appendText(b *strings.Builder) {
	for _, n := range e.nodes {
		if n.elem != nil {
			n.elem.appendText(b)
			continue
		}
		b.WriteString(n.text)
	}
}

func (e *Element) walk(fn func(*Element)) {
	for _, n := range e.nodes {
		if n.elem != nil {
			fn(n.elem)
			n.elem.walk(fn)
		}
	}
}
