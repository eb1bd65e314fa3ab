// Package reader implements the article reader page.
package reader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"rss-reader/internal/domain/entity"
	"rss-reader/internal/observability/logging"
)

// User-visible texts of the reader.
const (
	ErrorMessage    = "加载文章失败，请稍后重试"
	NotFoundCode    = "404"
	NotFoundMessage = "文章不存在或已被删除"
	BackLinkText    = "返回首页"
	DefaultSiteName = "NekoQwQ RSS Reader"
)

// ArticleSource provides article details. Article must return an error
// matching entity.ErrArticleNotFound when the article does not exist.
type ArticleSource interface {
	Article(ctx context.Context, id string) (entity.ArticleDetail, error)
}

// Sanitizer makes article markup safe to embed.
type Sanitizer interface {
	Sanitize(markup string) (string, error)
}

// View renders exactly one of the reader outcomes.
type View interface {
	RedirectToList()
	ShowNotFound()
	ShowError(message string)
	ShowArticle(page Page)
}

// Page is everything the view needs to show an article.
// Header fields are plain text. Body is sanitized markup when BodyIsMarkup is
// true and the raw content, to be shown as text, otherwise.
type Page struct {
	DocumentTitle string
	Title         string
	PublishTime   string
	// PublishedAt is the parsed PublishTime, zero when it is not a date.
	PublishedAt  time.Time
	Source       string
	OriginalLink string
	Body         string
	BodyIsMarkup bool
}

// Controller loads one article per call to Load.
type Controller struct {
	Source    ArticleSource
	Sanitizer Sanitizer
	View      View
	SiteName  string
	Logger    *slog.Logger
}

// Load reads the id query parameter and renders the matching article.
//
// Without an id the view is redirected to the list before anything is fetched
// and entity.ErrMissingArticleID is returned.
// A missing article shows the not-found view, any other fetch failure the
// error view; in both cases the error is returned. A sanitizer failure is not
// an error: the content is shown as plain text instead.
func (c *Controller) Load(ctx context.Context, query url.Values) error {
	id := query.Get("id")
	if id == "" {
		c.View.RedirectToList()
		return entity.ErrMissingArticleID
	}

	logger := logging.WithRequestID(ctx, c.logger()).With(slog.String("article_id", id))

	detail, err := c.Source.Article(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrArticleNotFound) {
			logger.Info("article not found")
			c.View.ShowNotFound()
		} else {
			logger.Error("failed to load article", slog.String("error", logging.SanitizeError(err)))
			c.View.ShowError(ErrorMessage)
		}
		return fmt.Errorf("load article %q: %w", id, err)
	}

	page := Page{
		DocumentTitle: detail.Title + " - " + c.siteName(),
		Title:         detail.Title,
		PublishTime:   detail.PublishTime,
		Source:        detail.Source,
		OriginalLink:  detail.OriginalLink,
		Body:          detail.Content,
	}
	if t, ok := detail.PublishedAt(); ok {
		page.PublishedAt = t
	}

	body, err := c.Sanitizer.Sanitize(detail.Content)
	if err != nil {
		logger.Warn("failed to sanitize article content, rendering as text",
			slog.String("error", err.Error()))
	} else {
		page.Body = body
		page.BodyIsMarkup = true
	}

	c.View.ShowArticle(page)
	return nil
}

func (c *Controller) siteName() string {
	if c.SiteName == "" {
		return DefaultSiteName
	}
	return c.SiteName
}

func (c *Controller) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
