// Package listing implements the article list page: the page count and one
// page of article summaries are fetched from the API and handed to a View
// together with the pagination strip.
package listing

import (
	"context"
	"fmt"
	"log/slog"

	"rss-reader/internal/common/pagination"
	"rss-reader/internal/domain/entity"
	"rss-reader/internal/observability/logging"
)

// ErrorMessage is shown in place of the article grid when a fetch fails.
const ErrorMessage = "加载页面失败，请稍后重试"

// ArticleSource provides list data. Implemented by feedapi.Client.
type ArticleSource interface {
	PageCount(ctx context.Context) (int, error)
	Articles(ctx context.Context, page int) ([]entity.ArticleSummary, error)
}

// View renders the list page.
type View interface {
	// ShowArticles renders the card grid. An empty slice renders the
	// "no articles" placeholder.
	ShowArticles(articles []entity.ArticleSummary)
	ShowPagination(strip pagination.Strip)
	// ShowError replaces the card grid with message.
	ShowError(message string)
	// ScrollToTop asks the client to scroll smoothly to the top of the page.
	ScrollToTop()
}

// Controller drives one list page. It is not safe for concurrent use; the
// HTTP layer builds one per request.
type Controller struct {
	Source          ArticleSource
	View            View
	State           *pagination.State
	MaxVisiblePages int
	Logger          *slog.Logger
}

// NewController returns a controller positioned on page 1 of 1.
func NewController(source ArticleSource, view View, maxVisiblePages int, logger *slog.Logger) *Controller {
	return &Controller{
		Source:          source,
		View:            view,
		State:           pagination.NewState(),
		MaxVisiblePages: maxVisiblePages,
		Logger:          logger,
	}
}

// Init loads the page count and then the current page, and renders cards and
// pagination. A CurrentPage seeded by the caller is clamped into range once
// the count is known. On failure the view shows ErrorMessage and the error is
// returned; nothing is retried.
func (c *Controller) Init(ctx context.Context) error {
	total, err := c.Source.PageCount(ctx)
	if err != nil {
		return c.fail(ctx, fmt.Errorf("fetch page count: %w", err))
	}
	c.State.SetTotalPages(total)
	pagination.UpdateTotalPages(c.State.TotalPages)

	articles, err := c.Source.Articles(ctx, c.State.CurrentPage)
	if err != nil {
		return c.fail(ctx, fmt.Errorf("fetch articles for page %d: %w", c.State.CurrentPage, err))
	}

	c.View.ShowArticles(articles)
	c.View.ShowPagination(pagination.BuildStrip(*c.State, c.maxVisible()))
	return nil
}

// NavigateTo moves to page. It does nothing and reports false when page is
// the current page or outside [1, TotalPages]. Otherwise the state moves to
// page before the fetch; on success cards and pagination are re-rendered and
// the view scrolls to top, on failure only the error message is shown.
func (c *Controller) NavigateTo(ctx context.Context, page int) (bool, error) {
	logger := logging.WithRequestID(ctx, c.logger())

	if !c.State.CanNavigate(page) {
		pagination.RecordNavigation(pagination.OutcomeNoop, page)
		pagination.LogNavigation(logger, *c.State, page, pagination.OutcomeNoop)
		return false, nil
	}

	c.State.CurrentPage = page

	articles, err := c.Source.Articles(ctx, page)
	if err != nil {
		pagination.RecordNavigation(pagination.OutcomeFailed, page)
		pagination.LogNavigation(logger, *c.State, page, pagination.OutcomeFailed)
		return true, c.fail(ctx, fmt.Errorf("fetch articles for page %d: %w", page, err))
	}

	c.View.ShowArticles(articles)
	c.View.ShowPagination(pagination.BuildStrip(*c.State, c.maxVisible()))
	c.View.ScrollToTop()

	pagination.RecordNavigation(pagination.OutcomeNavigated, page)
	pagination.LogNavigation(logger, *c.State, page, pagination.OutcomeNavigated)
	return true, nil
}

func (c *Controller) fail(ctx context.Context, err error) error {
	logging.WithRequestID(ctx, c.logger()).Error("failed to load article list",
		slog.Int("current_page", c.State.CurrentPage),
		slog.String("error", logging.SanitizeError(err)))
	c.View.ShowError(ErrorMessage)
	return err
}

func (c *Controller) maxVisible() int {
	if c.MaxVisiblePages < 1 {
		return pagination.DefaultMaxVisiblePages
	}
	return c.MaxVisiblePages
}

func (c *Controller) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
