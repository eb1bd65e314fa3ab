// Package resilience groups the fault tolerance helpers used around calls to
// the article API.
//
// The circuitbreaker subpackage wraps github.com/sony/gobreaker. A tripped
// breaker fails fast with gobreaker.ErrOpenState; nothing in this tree
// retries a failed call.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.FeedAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchPageCount(ctx)
//	})
package resilience
