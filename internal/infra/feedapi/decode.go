package feedapi

import (
	"github.com/samber/lo"

	"rss-reader/internal/common/pagination"
	"rss-reader/internal/domain/entity"
)

// Element names of the API documents.
const (
	elemPageCount    = "page_count"
	elemArticle      = "article"
	elemTitle        = "title"
	elemPublishTime  = "publish_time"
	elemSummary      = "summary"
	elemSource       = "source"
	elemUniqueID     = "unique_id"
	elemOriginalLink = "original_link"
	elemContent      = "content"
)

// decodePageCount reads the first page_count element. A missing element or a
// value that does not start with a positive integer yields 1.
func decodePageCount(doc *Element) int {
	el := doc.Find(elemPageCount)
	if el == nil {
		return 1
	}
	return pagination.ParseTotalPages(el.Text())
}

// decodeSummaries maps every article element, in document order.
func decodeSummaries(doc *Element) []entity.ArticleSummary {
	return lo.Map(doc.FindAll(elemArticle), func(el *Element, _ int) entity.ArticleSummary {
		return entity.NewArticleSummary(
			el.ChildText(elemTitle),
			el.ChildText(elemPublishTime),
			el.ChildText(elemSummary),
			el.ChildText(elemSource),
			el.ChildText(elemUniqueID),
		)
	})
}

// decodeDetail reads the first article element. ok is false when the document
// has none.
func decodeDetail(doc *Element) (detail entity.ArticleDetail, ok bool) {
	el := doc.Find(elemArticle)
	if el == nil {
		return entity.ArticleDetail{}, false
	}
	return entity.NewArticleDetail(
		el.ChildText(elemTitle),
		el.ChildText(elemPublishTime),
		el.ChildText(elemSource),
		el.ChildText(elemOriginalLink),
		el.ChildText(elemContent),
	), true
}
