// Package http provides an HTTP implementation of crmfill.DirectoryService
// that talks to the CRM bridge search endpoint.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/crmfill"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default timeout for directory requests.
const DefaultTimeout = 10 * time.Second

// SearchPath is the path of the contact search endpoint.
const SearchPath = "/api/v1/crm-bridge/contacts/search"

// RequestIDHeader carries a unique identifier for each search request.
const RequestIDHeader = "X-Request-ID"

// Ensure DirectoryClient implements crmfill.DirectoryService at compile time.
var _ crmfill.DirectoryService = (*DirectoryClient)(nil)

// DirectoryClient searches the CRM bridge over HTTP.
// Identical searches that are in flight at the same time share one request.
// DirectoryClient is safe for concurrent use.
type DirectoryClient struct {
	baseURL string
	token   string
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	flights singleflight.Group
}

// Option configures a DirectoryClient.
type Option func(*DirectoryClient)

// WithTimeout sets the timeout for directory requests.
// Defaults to DefaultTimeout (10s) if not specified. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *DirectoryClient) {
		c.timeout = d
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *DirectoryClient) {
		c.token = token
	}
}

// WithHTTPClient sets the underlying HTTP client. The WithTimeout setting
// still bounds every search.
func WithHTTPClient(client *http.Client) Option {
	return func(c *DirectoryClient) {
		c.client = client
	}
}

// WithRateLimit limits requests to rps per second with the given burst.
// Searches wait for a token before they are sent.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *DirectoryClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewDirectoryClient creates a DirectoryClient for the bridge at baseURL,
// e.g. "https://crm.example.com".
func NewDirectoryClient(baseURL string, opts ...Option) *DirectoryClient {
	c := &DirectoryClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c
}

// searchResponse is the bridge's answer. Contacts is a pointer so that a
// missing or null list can be told apart from an empty one.
type searchResponse struct {
	Contacts *[]*crmfill.Contact `json:"contacts"`
}

// SearchContacts posts req to the search endpoint.
func (c *DirectoryClient) SearchContacts(ctx context.Context, req crmfill.SearchRequest) ([]*crmfill.Contact, error) {
	key := strconv.Itoa(req.Limit) + "\x00" + req.Query

	// The shared request outlives any single caller; each caller still
	// returns as soon as its own context is done. The timeout bounds the
	// shared request whatever HTTP client is in use.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.flights.DoChan(key, func() (any, error) {
		fctx := flightCtx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(flightCtx, c.timeout)
			defer cancel()
		}
		return c.search(fctx, req)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]*crmfill.Contact), nil
	}
}

func (c *DirectoryClient) search(ctx context.Context, req crmfill.SearchRequest) ([]*crmfill.Contact, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SearchPath, bytes.NewReader(body))
	if err != nil {
		return nil, crmfill.Errorf(crmfill.EINVALID, "invalid directory URL: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("searching contacts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, crmfill.Errorf(crmfill.EUNAVAILABLE, "directory returned HTTP %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	if payload.Contacts == nil {
		return nil, crmfill.Errorf(crmfill.EUNAVAILABLE, "directory response has no contacts")
	}

	contacts := make([]*crmfill.Contact, 0, len(*payload.Contacts))
	for _, contact := range *payload.Contacts {
		if contact != nil {
			contacts = append(contacts, contact)
		}
	}
	return contacts, nil
}
