// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crossref retrieves work metadata from the CrossRef REST API.
// A lookup either returns the work's message object, reports that the DOI
// is unknown (HTTP 404, never retried), or fails with a RegistryError after
// bounded retries with linear backoff.
package crossref

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/pdiddy/doi-fetch/internal/httputil"
	"github.com/pdiddy/doi-fetch/internal/metadata"
	"github.com/pdiddy/doi-fetch/pkg/types"
)

// maxErrorBody caps how much of a failing response body is kept.
const maxErrorBody = 4096

// RegistryError reports that the registry kept failing after all retries.
type RegistryError struct {
	// Status is the HTTP status of the last response.
	Status int

	// Body is the (truncated) body of the last response.
	Body string

	// Reason describes the failure when the status alone does not.
	Reason string
}

func (e *RegistryError) Error() string {
	msg := fmt.Sprintf("crossref: HTTP %d", e.Status)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// errNotFound stops the retry loop on HTTP 404.
var errNotFound = errors.New("crossref: not found")

// Client talks to one CrossRef API endpoint.
type Client struct {
	BaseURL    string
	HTTP       *http.Client
	UserAgent  string
	Mailto     string
	PlusToken  string
	MaxRetries int
	Logger     *charmlog.Logger
}

// NewClient builds a client from cfg. A nil httpClient gets one with
// cfg.Timeout; a nil logger discards output.
func NewClient(cfg types.RegistryConfig, httpClient *http.Client, logger *charmlog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = charmlog.New(io.Discard)
	}
	// A configured zero means no retries; httputil treats zero as its default.
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = -1
	}
	return &Client{
		BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		HTTP:       httpClient,
		UserAgent:  cfg.UserAgent,
		Mailto:     cfg.Mailto,
		PlusToken:  cfg.PlusToken,
		MaxRetries: maxRetries,
		Logger:     logger,
	}
}

// Fetch retrieves the metadata of one DOI. found is false when the registry
// does not know the DOI; that outcome is not an error.
func (c *Client) Fetch(ctx context.Context, doi string) (raw metadata.Raw, found bool, err error) {
	reqURL := c.BaseURL + "/works/" + url.PathEscape(doi)
	if c.Mailto != "" {
		reqURL += "?" + url.Values{"mailto": {c.Mailto}}.Encode()
	}

	err = c.do(ctx, reqURL, func(body metadata.Raw) {
		raw = body.Get("message")
	})
	if errors.Is(err, errNotFound) {
		return metadata.Raw{}, false, nil
	}
	if err != nil {
		return metadata.Raw{}, false, err
	}
	return raw, true, nil
}

// Search runs a free-text works query restricted to the given CrossRef
// types and returns the matching items in registry order. A 404 yields no
// items.
func (c *Client) Search(ctx context.Context, query string, filterTypes []string) ([]metadata.Raw, error) {
	params := url.Values{"query": {query}}
	if len(filterTypes) > 0 {
		filters := make([]string, len(filterTypes))
		for i, t := range filterTypes {
			filters[i] = "type:" + t
		}
		params.Set("filter", strings.Join(filters, ","))
	}
	if c.Mailto != "" {
		params.Set("mailto", c.Mailto)
	}
	reqURL := c.BaseURL + "/works?" + params.Encode()

	var items []metadata.Raw
	err := c.do(ctx, reqURL, func(body metadata.Raw) {
		items = body.Path("message", "items").Items()
	})
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	return items, err
}

// do performs a GET with retries and hands the parsed body of an accepted
// response to onOK.
func (c *Client) do(ctx context.Context, reqURL string, onOK func(metadata.Raw)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.PlusToken != "" {
		req.Header.Set("Crossref-Plus-API-Token", "Bearer "+c.PlusToken)
	}

	opts := httputil.Options{
		MaxRetries: c.MaxRetries,
		OnBackoff: func(n int, wait time.Duration) {
			c.Logger.Warn("registry request failed, retrying", "url", reqURL, "retry", n, "wait", wait)
		},
	}
	err = httputil.DoWithRetry(ctx, c.HTTP, req, opts, func(resp *http.Response) error {
		return c.accept(resp, onOK)
	})
	if err == nil || errors.Is(err, errNotFound) {
		return err
	}
	var regErr *RegistryError
	if errors.As(err, &regErr) || ctx.Err() != nil {
		return err
	}
	return fmt.Errorf("crossref request: %w", err)
}

func (c *Client) accept(resp *http.Response, onOK func(metadata.Raw)) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return errNotFound
	case http.StatusOK:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return httputil.Retryable(&RegistryError{Status: resp.StatusCode, Reason: "reading body: " + err.Error()})
		}
		body := metadata.Parse(data)
		if status, _ := body.Str("status"); status != "ok" {
			return httputil.Retryable(&RegistryError{
				Status: resp.StatusCode,
				Reason: "response status is not ok",
				Body:   truncate(string(data)),
			})
		}
		onOK(body)
		return nil
	default:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return httputil.Retryable(&RegistryError{Status: resp.StatusCode, Body: string(data)})
	}
}

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody]
}
