// internal/client/searchapi/client.go

// Package searchapi is the HTTP client for the opportunity search API. It is
// what the search controller and the oppsearch command talk to.
package searchapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/opportunityhub/internal/app/system/limits"
	"github.com/dalemusser/opportunityhub/internal/domain/filter"
	"github.com/dalemusser/opportunityhub/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Paths, relative to the base URL.
const (
	PathSearch      = "/search/opportunities"
	PathSuggestions = "/search/suggestions"
	PathSave        = "/search/save"
	PathSaved       = "/search/saved"
	PathListing     = "/opportunities"
)

const defaultTimeout = 15 * time.Second

var (
	// ErrUnauthorized is returned for 401 responses.
	ErrUnauthorized = errors.New("authentication required")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")
)

// StatusError is a non-2xx response. It unwraps to ErrUnauthorized or
// ErrNotFound where those apply.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d", e.Code)
	}
	return fmt.Sprintf("http %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// Client calls the search API.
type Client struct {
	base  *url.URL
	http  *http.Client
	token string
	log   *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token identifying the caller. Without one the
// client is anonymous.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		base: u,
		http: &http.Client{Timeout: defaultTimeout},
		log:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Authenticated reports whether the client carries a caller identity.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// Search runs a search with the model's query, facets, sort and page.
func (c *Client) Search(ctx context.Context, m filter.Model) (models.ResultPage, error) {
	return c.resultPage(ctx, PathSearch, m)
}

// List calls the plain listing endpoint with the same parameters.
func (c *Client) List(ctx context.Context, m filter.Model) (models.ResultPage, error) {
	return c.resultPage(ctx, PathListing, m)
}

// Suggest returns title suggestions for q.
func (c *Client) Suggest(ctx context.Context, q string) ([]models.Suggestion, error) {
	var out []models.Suggestion
	v := url.Values{"q": {q}}
	if err := c.do(ctx, http.MethodGet, PathSuggestions, v, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Suggestion{}
	}
	return out, nil
}

type saveBody struct {
	Name    string          `json:"name"`
	Filters filter.Snapshot `json:"filters"`
}

// Save stores snap under name for the caller.
func (c *Client) Save(ctx context.Context, name string, snap filter.Snapshot) (models.SavedSearch, error) {
	var out models.SavedSearch
	err := c.do(ctx, http.MethodPost, PathSave, nil, saveBody{Name: name, Filters: snap}, &out)
	return out, err
}

// ListSaved returns the caller's saved searches, newest first.
func (c *Client) ListSaved(ctx context.Context) ([]models.SavedSearch, error) {
	var out []models.SavedSearch
	if err := c.do(ctx, http.MethodGet, PathSaved, nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.SavedSearch{}
	}
	return out, nil
}

// DeleteSaved removes one of the caller's saved searches.
func (c *Client) DeleteSaved(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, PathSaved+"/"+url.PathEscape(id), nil, nil, nil)
}

// pageBody tolerates responses without pagination.
type pageBody struct {
	Opportunities []models.Opportunity `json:"opportunities"`
	Pagination    *models.Pagination   `json:"pagination"`
}

func (c *Client) resultPage(ctx context.Context, path string, m filter.Model) (models.ResultPage, error) {
	var body pageBody
	if err := c.do(ctx, http.MethodGet, path, m.Values(), nil, &body); err != nil {
		return models.ResultPage{}, err
	}
	return normalizePage(body), nil
}

// normalizePage fills in a single page covering everything returned when
// the server omits pagination.
func normalizePage(b pageBody) models.ResultPage {
	opps := b.Opportunities
	if opps == nil {
		opps = []models.Opportunity{}
	}
	p := models.Pagination{Page: 1, Limit: filter.DefaultLimit, Total: int64(len(opps)), Pages: 1}
	if b.Pagination != nil {
		p = *b.Pagination
	}
	return models.ResultPage{Opportunities: opps, Pagination: p}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, limits.MaxClientResponse))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		return &StatusError{Code: resp.StatusCode, Message: e.Error}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
