package entity

import "errors"

// Sentinel errors for domain layer operations.
var (
	// ErrArticleNotFound indicates that the backend has no article for the
	// requested identifier (HTTP 404, or a response without an article element).
	ErrArticleNotFound = errors.New("article not found")

	// ErrMissingArticleID indicates that the reader was opened without an id.
	ErrMissingArticleID = errors.New("article id is required")
)
