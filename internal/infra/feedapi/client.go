// Package feedapi is the HTTP client of the RSS aggregation API.
//
// The API answers with small XML documents:
//
//	GET /api/get/page-count        <page_count>N</page_count>
//	GET /api/get/basic_info/{page} <article>...</article>*
//	GET /api/get/content/{id}      <article>...</article>
//
// Every call goes through a circuit breaker and is bounded by a timeout and a
// body size limit. Nothing is retried or cached.
//
// Thread safety: Client is safe for concurrent use.
package feedapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"rss-reader/internal/domain/entity"
	"rss-reader/internal/observability/tracing"
	"rss-reader/internal/resilience/circuitbreaker"
)

// Endpoint names, used in metrics, spans and StatusError.
const (
	EndpointPageCount = "page_count"
	EndpointBasicInfo = "basic_info"
	EndpointContent   = "content"
)

var (
	// ErrTimeout indicates that the request exceeded Config.Timeout.
	ErrTimeout = errors.New("feed api request timed out")

	// ErrBodyTooLarge indicates that the response exceeded Config.MaxBodyBytes.
	ErrBodyTooLarge = errors.New("feed api response too large")
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feed api %s returned status %d", e.Endpoint, e.Code)
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBreakerConfig replaces circuitbreaker.FeedAPIConfig as the settings of
// the client's breaker. A nil IsSuccessful is replaced by the client's own
// classification, so 4xx answers and canceled requests never trip it.
func WithBreakerConfig(cfg circuitbreaker.Config) Option {
	return func(c *Client) { c.breakerConfig = cfg }
}

// Client fetches and decodes API documents.
type Client struct {
	baseURL       string
	config        Config
	httpClient    *http.Client
	breakerConfig circuitbreaker.Config
	breaker       *circuitbreaker.CircuitBreaker
}

// New creates a Client. It fails only on an invalid configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid feed api config: %w", err)
	}

	c := &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		config:        cfg,
		breakerConfig: circuitbreaker.FeedAPIConfig(),
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breakerConfig.IsSuccessful == nil {
		c.breakerConfig.IsSuccessful = isBreakerSuccess
	}
	c.breaker = circuitbreaker.New(c.breakerConfig)
	return c, nil
}

// PageCount returns the number of list pages. A document without a usable
// page_count element counts as one page.
func (c *Client) PageCount(ctx context.Context) (int, error) {
	doc, err := c.get(ctx, EndpointPageCount, "/api/get/page-count")
	if err != nil {
		return 0, err
	}
	return decodePageCount(doc), nil
}

// Articles returns the summaries of one list page, in document order.
func (c *Client) Articles(ctx context.Context, page int) ([]entity.ArticleSummary, error) {
	doc, err := c.get(ctx, EndpointBasicInfo, "/api/get/basic_info/"+strconv.Itoa(page))
	if err != nil {
		return nil, err
	}
	return decodeSummaries(doc), nil
}

// Article returns one article. A 404 answer and a document without an
// article element both yield an error matching entity.ErrArticleNotFound.
func (c *Client) Article(ctx context.Context, id string) (entity.ArticleDetail, error) {
	doc, err := c.get(ctx, EndpointContent, "/api/get/content/"+url.PathEscape(id))
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return entity.ArticleDetail{}, fmt.Errorf("%w: %w", entity.ErrArticleNotFound, err)
		}
		return entity.ArticleDetail{}, err
	}

	detail, ok := decodeDetail(doc)
	if !ok {
		return entity.ArticleDetail{}, fmt.Errorf("%w: response has no article element", entity.ErrArticleNotFound)
	}
	return detail, nil
}

// BreakerState returns the state of the circuit breaker ("closed", "half-open", "open").
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// get fetches path through the breaker and parses the body. Malformed XML is
// logged and the partial document returned.
func (c *Client) get(ctx context.Context, endpoint, path string) (*Element, error) {
	start := time.Now()
	header := make(http.Header)
	ctx, span := tracing.StartClientSpan(ctx, "feedapi."+endpoint, header,
		attribute.String("feedapi.endpoint", endpoint),
		attribute.String("feedapi.circuit_breaker", c.breaker.Name()),
		attribute.String("http.method", http.MethodGet),
		attribute.String("http.url", c.baseURL+path),
	)

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, endpoint, c.baseURL+path, header)
	})
	recordRequest(endpoint, outcomeOf(err), time.Since(start))
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, err
	}

	body := result.([]byte)
	span.SetAttributes(attribute.Int("http.response_size", len(body)))
	tracing.EndSpan(span, nil)

	doc, perr := Parse(bytes.NewReader(body))
	if perr != nil {
		slog.WarnContext(ctx, "feed api returned malformed XML, using partial document",
			slog.String("endpoint", endpoint),
			slog.Any("error", perr))
	}
	return doc, nil
}

// fetch performs one HTTP request and returns the raw body.
// It is called by get through the circuit breaker.
func (c *Client) fetch(ctx context.Context, endpoint, rawURL string, header http.Header) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/xml, text/xml;q=0.9, */*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %s exceeded %v", ErrTimeout, endpoint, c.config.Timeout)
		}
		return nil, fmt.Errorf("feed api %s request failed: %w", endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain a bounded amount so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes+1))
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %s exceeded %v", ErrTimeout, endpoint, c.config.Timeout)
		}
		return nil, fmt.Errorf("failed to read feed api %s response: %w", endpoint, err)
	}
	if int64(len(body)) > c.config.MaxBodyBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, endpoint, c.config.MaxBodyBytes)
	}
	return body, nil
}

// isBreakerSuccess keeps client-side outcomes out of the failure ratio: a 4xx
// answer means the API is up, and a canceled request says nothing about it.
func isBreakerSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code < 500
	}
	return false
}

func outcomeOf(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, circuitbreaker.ErrOpen):
		return outcomeCircuitOpen
	case errors.As(err, &statusErr):
		if statusErr.Code == http.StatusNotFound {
			return outcomeNotFound
		}
		return outcomeHTTPError
	case errors.Is(err, ErrTimeout):
		return outcomeTimeout
	case errors.Is(err, ErrBodyTooLarge):
		return outcomeTooLarge
	case errors.Is(err, context.Canceled):
		return outcomeCanceled
	default:
		return outcomeTransportError
	}
}
