package render

import (
	"html/template"
	"io"
	"net/http"

	"rss-reader/internal/domain/entity"
	"rss-reader/internal/usecase/reader"
)

// Outcome is what a ReaderPage ended up showing.
type Outcome int

// Reader outcomes.
const (
	OutcomeNone Outcome = iota
	OutcomeRedirect
	OutcomeNotFound
	OutcomeError
	OutcomeArticle
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRedirect:
		return "redirect"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeError:
		return "error"
	case OutcomeArticle:
		return "article"
	default:
		return "none"
	}
}

// ReaderPage records the reader controller's decision and renders it.
type ReaderPage struct {
	renderer *Renderer
	outcome  Outcome
	message  string
	page     reader.Page
}

var _ reader.View = (*ReaderPage)(nil)

// NewReaderPage returns an empty reader view.
func (r *Renderer) NewReaderPage() *ReaderPage {
	return &ReaderPage{renderer: r}
}

// RedirectToList implements reader.View.
func (p *ReaderPage) RedirectToList() { p.outcome = OutcomeRedirect }

// ShowNotFound implements reader.View.
func (p *ReaderPage) ShowNotFound() { p.outcome = OutcomeNotFound }

// ShowError implements reader.View.
func (p *ReaderPage) ShowError(message string) {
	p.outcome = OutcomeError
	p.message = message
}

// ShowArticle implements reader.View.
func (p *ReaderPage) ShowArticle(page reader.Page) {
	p.outcome = OutcomeArticle
	p.page = page
}

// Outcome returns the recorded outcome.
func (p *ReaderPage) Outcome() Outcome {
	return p.outcome
}

// PlainText reports whether an article is shown with its raw content as
// text because sanitizing failed.
func (p *ReaderPage) PlainText() bool {
	return p.outcome == OutcomeArticle && !p.page.BodyIsMarkup
}

// RedirectLocation is the target of OutcomeRedirect.
func (p *ReaderPage) RedirectLocation() string {
	return entity.ListPage
}

// Status maps the outcome onto an HTTP status code.
func (p *ReaderPage) Status() int {
	switch p.outcome {
	case OutcomeRedirect:
		return http.StatusFound
	case OutcomeNotFound:
		return http.StatusNotFound
	case OutcomeError:
		return http.StatusBadGateway
	case OutcomeArticle:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

type readerData struct {
	SiteName      string
	DocumentTitle string
	NotFound      bool
	NotFoundCode  string
	Failed        bool
	Message       string
	BackLinkText  string
	Article       *reader.Page
	DateTime      string
	Markup        template.HTML
}

// Write renders the reader page for the recorded outcome.
func (p *ReaderPage) Write(w io.Writer) error {
	site := p.renderer.siteName
	data := readerData{
		SiteName:      site,
		DocumentTitle: site,
		NotFoundCode:  reader.NotFoundCode,
		BackLinkText:  reader.BackLinkText,
	}

	switch p.outcome {
	case OutcomeNotFound:
		data.NotFound = true
		data.Message = reader.NotFoundMessage
	case OutcomeArticle:
		page := p.page
		data.Article = &page
		data.DocumentTitle = page.DocumentTitle
		if !page.PublishedAt.IsZero() {
			data.DateTime = datetime(page.PublishedAt, true)
		}
		if page.BodyIsMarkup {
			// sanitized by the reader controller
			data.Markup = template.HTML(page.Body) // #nosec G203
		}
	default:
		data.Failed = true
		data.Message = p.message
		if data.Message == "" {
			data.Message = reader.ErrorMessage
		}
	}
	return p.renderer.execute(w, "reader.html", data)
}
