// Package confluence is a minimal REST client for the Confluence content
// API, covering exactly what a page-tree export needs: fetching single
// pages with a fixed expansion set and walking paginated child listings.
// Transient failures (429, 503) are retried with backoff; every other
// failure maps onto a small typed error taxonomy.
package confluence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// pageExpand is the expansion set requested on every page fetch so a
	// single call carries everything the export needs.
	pageExpand = "body.storage,history,version,space,ancestors"

	// childPageLimit is the page size for child listings. A batch shorter
	// than this ends the pagination.
	childPageLimit = 100

	defaultTimeout = 30 * time.Second
	userAgent      = "confluence-md"

	// maxErrorBody caps how much of an error response body is kept for
	// the error message.
	maxErrorBody = 512
)

// HTTPDoer is the slice of *http.Client the client depends on. Tests
// substitute their own implementation.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the connection settings for a Confluence instance.
type Config struct {
	// BaseURL is the instance root, e.g. https://example.atlassian.net/wiki
	// for Cloud or https://confluence.example.com for Server.
	BaseURL string
	// User selects basic auth (username + token) when non-empty. When
	// empty the token is sent as a bearer token instead.
	User string
	// Token is an API token (Cloud) or personal access token (Server).
	Token string
	// Timeout bounds each HTTP request. Unset means 30s.
	Timeout time.Duration
	// Retry controls backoff on transient failures. A zero value selects
	// DefaultRetryPolicy.
	Retry RetryPolicy
}

// Client talks to one Confluence instance.
type Client struct {
	http    HTTPDoer
	baseURL string
	user    string
	token   string
	retry   RetryPolicy
	logger  *slog.Logger
}

// NewClient builds a client with a tuned transport. The logger may be
// nil, in which case retry warnings are discarded.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryPolicy()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	return &Client{
		http:    &http.Client{Timeout: timeout, Transport: transport},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		user:    cfg.User,
		token:   cfg.Token,
		retry:   retry,
		logger:  logger,
	}
}

// BaseURL returns the normalized instance root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchPage retrieves a single page with body, history, version, space
// and ancestors expanded.
func (c *Client) FetchPage(ctx context.Context, pageID string) (*Page, error) {
	c.logger.Debug("fetching page", "page_id", pageID)
	endpoint := c.baseURL + "/rest/api/content/" + url.PathEscape(pageID)
	params := url.Values{"expand": {pageExpand}}

	page, err := withRetry(ctx, c.retry, c.logger, func() (*Page, error) {
		var p Page
		if err := c.getJSON(ctx, endpoint, params, &p); err != nil {
			return nil, err
		}
		return &p, nil
	})
	if err != nil {
		return nil, mapError(err, pageID)
	}
	return page, nil
}

// FetchChildren retrieves every direct child page of the given page, in
// listing order, walking the pagination until a batch comes back short
// or the response stops advertising a next link.
func (c *Client) FetchChildren(ctx context.Context, pageID string) ([]ChildPage, error) {
	c.logger.Debug("listing children", "page_id", pageID)
	endpoint := c.baseURL + "/rest/api/content/" + url.PathEscape(pageID) + "/child/page"

	var children []ChildPage
	for start := 0; ; start += childPageLimit {
		params := url.Values{
			"start": {fmt.Sprint(start)},
			"limit": {fmt.Sprint(childPageLimit)},
		}
		batch, err := withRetry(ctx, c.retry, c.logger, func() (*childList, error) {
			var list childList
			if err := c.getJSON(ctx, endpoint, params, &list); err != nil {
				return nil, err
			}
			return &list, nil
		})
		if err != nil {
			return nil, mapError(err, pageID)
		}

		children = append(children, batch.Results...)
		if len(batch.Results) < childPageLimit {
			break
		}
		if batch.Links == nil || batch.Links.Next == "" {
			break
		}
	}
	return children, nil
}

// CurrentUser fetches the authenticated account. It exists so a health
// check can verify credentials without touching any page.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	endpoint := c.baseURL + "/rest/api/user/current"
	user, err := withRetry(ctx, c.retry, c.logger, func() (*User, error) {
		var u User
		if err := c.getJSON(ctx, endpoint, nil, &u); err != nil {
			return nil, err
		}
		return &u, nil
	})
	if err != nil {
		return nil, mapError(err, "")
	}
	return user, nil
}

// getJSON performs one GET and decodes the response into out. Non-2xx
// responses come back as *statusError for the retry loop to inspect;
// transport failures come back as *ConnectionError.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	reqURL := endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.user != "" {
		req.SetBasicAuth(c.user, c.token)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectionError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{
			status:     resp.StatusCode,
			retryAfter: resp.Header.Get("Retry-After"),
			body:       errorSnippet(body),
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// mapError translates internal failures into the public taxonomy.
func mapError(err error, pageID string) error {
	var se *statusError
	if errors.As(err, &se) {
		switch se.status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthError{Status: se.status}
		case http.StatusNotFound:
			return &NotFoundError{PageID: pageID}
		default:
			return &APIError{Status: se.status, Message: se.body}
		}
	}
	var ce *ConnectionError
	if errors.As(err, &ce) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &ConnectionError{Err: err}
	}
	// Decode failures and anything else unexpected.
	return &APIError{Message: err.Error()}
}

// errorSnippet trims an error response body down to one short line.
func errorSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody]
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
