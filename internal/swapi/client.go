// Package swapi is a minimal client for the Star Wars API: resource keys
// in, raw JSON bodies out.
package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// maxBodySize caps how much of an upstream body is read.
const maxBodySize = 4 << 20

// Client wraps the SWAPI REST API. It only knows how to turn a resource
// key into a GET and return the JSON body. Decoding into typed records is
// up to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new SWAPI client. An empty baseURL means
// DefaultBaseURL.
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("swapi: base URL must be http(s): %q", baseURL)
	}
	// Keys are relative paths, so the base always ends with a slash.
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: newHTTPClient(o, logger),
		logger:     logger,
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Key strips the client's base URL from a full resource URL.
func (c *Client) Key(url string) string {
	return KeyFor(c.baseURL, url)
}

// Fetch performs GET <base><key> and returns the raw JSON body.
func (c *Client) Fetch(ctx context.Context, key string) ([]byte, error) {
	requestURL := c.baseURL + key
	c.logger.Debug().Str("url", requestURL).Msg("Making SWAPI request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("swapi: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("swapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("swapi: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug().Str("key", key).Int("status", resp.StatusCode).Msg("SWAPI request failed")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Key:        key,
			Body:       string(body),
		}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s", ErrDecode, key)
	}

	return body, nil
}
