package render

import (
	"io"

	"rss-reader/internal/common/pagination"
	"rss-reader/internal/domain/entity"
	"rss-reader/internal/usecase/listing"
)

// ListPage records what the list controller asked for and renders it either
// as the full index page or as the fragment swapped in by app.js.
type ListPage struct {
	renderer    *Renderer
	articles    []entity.ArticleSummary
	strip       *pagination.Strip
	message     string
	scrollToTop bool
}

var _ listing.View = (*ListPage)(nil)

// NewListPage returns an empty list view.
func (r *Renderer) NewListPage() *ListPage {
	return &ListPage{renderer: r}
}

// ShowArticles implements listing.View.
func (p *ListPage) ShowArticles(articles []entity.ArticleSummary) {
	p.articles = articles
	p.message = ""
}

// ShowPagination implements listing.View.
func (p *ListPage) ShowPagination(strip pagination.Strip) {
	p.strip = &strip
}

// ShowError implements listing.View.
func (p *ListPage) ShowError(message string) {
	p.message = message
}

// ScrollToTop implements listing.View.
func (p *ListPage) ScrollToTop() {
	p.scrollToTop = true
}

// Failed reports whether the grid shows an error message.
func (p *ListPage) Failed() bool {
	return p.message != ""
}

// ScrollRequested reports whether the controller asked to scroll to top.
func (p *ListPage) ScrollRequested() bool {
	return p.scrollToTop
}

// ArticleCount is the number of cards shown.
func (p *ListPage) ArticleCount() int {
	return len(p.articles)
}

// WriteFull renders the complete index page.
func (p *ListPage) WriteFull(w io.Writer) error {
	return p.renderer.execute(w, "index.html", p.data())
}

// WriteFragment renders the article grid followed by the pagination strip.
// The strip is omitted when the controller did not render one.
func (p *ListPage) WriteFragment(w io.Writer) error {
	return p.renderer.execute(w, "fragment", p.data())
}

type card struct {
	Title       string
	PublishTime string
	DateTime    string
	Source      string
	Summary     string
	URL         string
}

type listData struct {
	SiteName       string
	Articles       []card
	Empty          bool
	Error          string
	FailureMessage string
	Strip          *pagination.Strip
}

func (p *ListPage) data() listData {
	cards := make([]card, 0, len(p.articles))
	for _, a := range p.articles {
		t, ok := a.PublishedAt()
		cards = append(cards, card{
			Title:       a.Title,
			PublishTime: a.PublishTime,
			DateTime:    datetime(t, ok),
			Source:      a.Source,
			Summary:     a.Summary,
			URL:         a.ReaderURL(),
		})
	}
	return listData{
		SiteName:       p.renderer.siteName,
		Articles:       cards,
		Empty:          len(cards) == 0,
		Error:          p.message,
		FailureMessage: listing.ErrorMessage,
		Strip:          p.strip,
	}
}
