// Package client downloads judicial decisions from the Caselaw Access
// Project and CourtListener APIs.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
)

// ErrNoResults is returned when a query matches no cases.
var ErrNoResults = errors.New("API returned no cases")

// APIError reports a failed request to a case-law API.
type APIError struct {
	API        string // "Caselaw Access Project" or "CourtListener"
	StatusCode int    // 0 if the request was never sent
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s API: %s", e.API, e.Message)
	}
	return fmt.Sprintf("%s API (HTTP %d): %s", e.API, e.StatusCode, e.Message)
}

// NotFound reports whether the API answered 404.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Option configures a client.
type Option func(*options)

type options struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
	cache      *ResponseCache
}

// WithEndpoint overrides the API base URL. It should end with a slash.
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCache caches successful responses.
func WithCache(c *ResponseCache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// transport sends requests on behalf of one API, with or without the
// account token.
type transport struct {
	api        string
	endpoint   string
	anonymous  *http.Client
	authorized *http.Client // nil without a token
	logger     *slog.Logger
	cache      *ResponseCache
}

func newTransport(api, defaultEndpoint, token string, opts []Option) *transport {
	o := options{endpoint: defaultEndpoint}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = http.DefaultClient
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	t := &transport{
		api:       api,
		endpoint:  o.endpoint,
		anonymous: o.httpClient,
		logger:    o.logger.With("api", api),
		cache:     o.cache,
	}

	if token = cleanToken(token); token != "" {
		// Both APIs expect "Authorization: Token <key>".
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, o.httpClient)
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Token"})
		t.authorized = oauth2.NewClient(ctx, ts)
	}
	return t
}

// cleanToken strips a "Token " prefix copied along with the key.
func cleanToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Token "))
}

// do sends a request and returns the response body and status code. Only
// 2xx responses are cached.
func (t *transport) do(ctx context.Context, method, rawURL string, form url.Values, auth bool) ([]byte, int, error) {
	body := ""
	if form != nil {
		body = form.Encode()
	}
	if t.cache != nil {
		if cached := t.cache.Get(method, rawURL, body, auth); cached != nil {
			t.logger.DebugContext(ctx, "cache hit", "method", method, "url", rawURL)
			return cached, http.StatusOK, nil
		}
	}

	httpClient := t.anonymous
	if auth {
		if t.authorized == nil {
			return nil, 0, &APIError{API: t.api, Message: "an API token is required for this request"}
		}
		httpClient = t.authorized
	}

	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	t.logger.DebugContext(ctx, "sending request", "method", method, "url", rawURL, "auth", auth)
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}
	t.logger.DebugContext(ctx, "received response", "url", rawURL, "status", resp.StatusCode, "bytes", len(data))

	if t.cache != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		t.cache.Set(method, rawURL, body, auth, data)
	}
	return data, resp.StatusCode, nil
}

// get sends a GET request to rawURL with params added to its query.
func (t *transport) get(ctx context.Context, rawURL string, params url.Values, auth bool) ([]byte, int, error) {
	if len(params) > 0 {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, 0, fmt.Errorf("parsing URL %q: %w", rawURL, err)
		}
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
		rawURL = u.String()
	}
	return t.do(ctx, http.MethodGet, rawURL, nil, auth)
}

// detail extracts the "detail" message APIs send with error responses.
func detail(body []byte, status int) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return http.StatusText(status)
}

// isID reports whether query is a numeric database ID.
func isID(query string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(query), 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
