// Package apiclient issues HTTP CRUD requests against the REST backend and
// maps transport failures and non-2xx statuses into the apierror taxonomy.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/dogukanakin/local-mcp/internal/apierror"
)

const (
	// DefaultTimeout bounds a single request end to end.
	DefaultTimeout = 30 * time.Second
	userAgent      = "local-mcp-client/1.0.0"
)

// Client is the transport client. Its configuration (base URL, timeout,
// headers) is read-only after construction; the zero number of retries,
// caches and pools beyond net/http's own is deliberate.
type Client struct {
	baseURL string
	http    *http.Client
	headers map[string]string
}

// Option tweaks a Client at construction time.
type Option func(*Client)

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient substitutes the underlying *http.Client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a Client targeting baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		headers: map[string]string{
			"User-Agent":   userAgent,
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL reports the configured backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// Request issues method against path and returns the decoded response
// payload. Query parameters with empty values are dropped before the URL is
// built. A non-2xx status is converted through apierror.FromStatus and
// returned as the error.
func (c *Client) Request(ctx context.Context, method, path string, body any, query url.Values) (any, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")

	if cleaned := cleanQuery(query); len(cleaned) > 0 {
		target += "?" + cleaned.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, apierror.NewGeneric(fmt.Sprintf("Request failed: %v", err), 0)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), target, reader)
	if err != nil {
		return nil, apierror.NewGeneric(fmt.Sprintf("Request failed: %v", err), 0)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	defer resp.Body.Close()

	payload := decodeBody(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return payload, nil
	}
	return nil, apierror.FromStatus(resp.StatusCode, payload)
}

// CheckHealth probes GET / and reports whether the backend answered with a
// payload carrying a "message" field.
func (c *Client) CheckHealth(ctx context.Context) bool {
	payload, err := c.Request(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return false
	}
	m, ok := payload.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m["message"]
	return ok
}

// decodeBody attempts a JSON decode; on failure the raw text is preserved as
// a {"message": <text>} payload so error extraction still has something to
// work with.
func decodeBody(r io.Reader) any {
	raw, err := io.ReadAll(r)
	if err != nil {
		return map[string]any{"message": fmt.Sprintf("failed to read response body: %v", err)}
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return map[string]any{"message": string(raw)}
	}
	return payload
}

func cleanQuery(query url.Values) url.Values {
	if query == nil {
		return nil
	}
	cleaned := url.Values{}
	for key, vals := range query {
		for _, v := range vals {
			if v != "" {
				cleaned.Add(key, v)
			}
		}
	}
	return cleaned
}

// mapTransportError classifies failures that never produced a status code:
// timeouts map to the timeout kind (status 408), refused connections to the
// connection kind (status 503), anything else is generic.
func mapTransportError(err error) *apierror.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apierror.NewTimeout("Request timeout")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apierror.NewTimeout("Request timeout")
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return apierror.NewConnection("Connection failed - is the API server running?")
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return apierror.NewConnection("Connection failed - is the API server running?")
	}
	return apierror.NewGeneric(fmt.Sprintf("Request failed: %v", err), 0)
}
