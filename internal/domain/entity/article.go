// Package entity defines the domain entities rendered by the reader front-end.
// Entities are transient: they are decoded from API responses, rendered once and
// discarded on navigation.
package entity

import (
	"net/url"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Placeholder values used when the API omits a field or sends it empty.
const (
	DefaultTitle        = "无标题"
	DefaultPublishTime  = "2099-01-01"
	DefaultSummary      = "无摘要"
	DefaultSource       = "RSS订阅"
	DefaultUniqueID     = ""
	DefaultOriginalLink = "#"
	DefaultContent      = "无内容"
)

// ReaderPage is the relative path of the article reader page.
const ReaderPage = "reader.html"

// ListPage is the relative path of the article list page.
const ListPage = "index.html"

// ArticleSummary is one entry of an article list page.
// UniqueID is the key used to open the article in the reader.
type ArticleSummary struct {
	Title       string
	PublishTime string
	Summary     string
	Source      string
	UniqueID    string
}

// NewArticleSummary builds an ArticleSummary, substituting the placeholder for
// every empty field.
func NewArticleSummary(title, publishTime, summary, source, uniqueID string) ArticleSummary {
	return ArticleSummary{
		Title:       orDefault(title, DefaultTitle),
		PublishTime: orDefault(publishTime, DefaultPublishTime),
		Summary:     orDefault(summary, DefaultSummary),
		Source:      orDefault(source, DefaultSource),
		UniqueID:    orDefault(uniqueID, DefaultUniqueID),
	}
}

// ReaderURL returns the relative reader link for the article with the
// identifier percent-encoded into the id query parameter.
func (a ArticleSummary) ReaderURL() string {
	return ReaderPage + "?" + url.Values{"id": {a.UniqueID}}.Encode()
}

// PublishedAt parses PublishTime. The boolean is false when the text is not a
// recognizable date; callers should keep displaying PublishTime verbatim.
func (a ArticleSummary) PublishedAt() (time.Time, bool) {
	return parsePublishTime(a.PublishTime)
}

// ArticleDetail is the full article shown by the reader.
// Content is markup supplied by the backend and must be sanitized before it is
// rendered as HTML.
type ArticleDetail struct {
	Title        string
	PublishTime  string
	Source       string
	OriginalLink string
	Content      string
}

// NewArticleDetail builds an ArticleDetail, substituting the placeholder for
// every empty field.
func NewArticleDetail(title, publishTime, source, originalLink, content string) ArticleDetail {
	return ArticleDetail{
		Title:        orDefault(title, DefaultTitle),
		PublishTime:  orDefault(publishTime, DefaultPublishTime),
		Source:       orDefault(source, DefaultSource),
		OriginalLink: orDefault(originalLink, DefaultOriginalLink),
		Content:      orDefault(content, DefaultContent),
	}
}

// PublishedAt parses PublishTime, see ArticleSummary.PublishedAt.
func (a ArticleDetail) PublishedAt() (time.Time, bool) {
	return parsePublishTime(a.PublishTime)
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func parsePublishTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
