// Package fetch is the keyed, deduplicating, suspense-aware data layer that
// views read SWAPI resources through.
//
// A Client owns one in-memory cache for the lifetime of the process.
// Concurrent reads of the same key share a single upstream request. In
// suspense mode a read of an uncached key starts that request in the
// background and returns ErrSuspended immediately; the nearest boundary
// renders its loading placeholder and resumes later under a blocking
// context (see WithBlocking).
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/pthm/swfilms/internal/swapi"
)

// Fetcher turns a resource key into a JSON body.
type Fetcher func(ctx context.Context, key string) ([]byte, error)

// Config is the session-wide fetch configuration. It is built once at
// startup and injected through WithClient.
type Config struct {
	// BaseURL is stripped from resource URLs to form keys.
	BaseURL string
	Fetcher Fetcher
	// Suspense makes uncached reads suspend instead of block.
	Suspense bool
	// TTL bounds how long a resolved body is served before it is fetched
	// again. Zero keeps entries until evicted.
	TTL time.Duration
	// Size is the maximum number of cached bodies.
	Size int
	// Concurrency limits ReadAll.
	Concurrency int
	// Timeout bounds background fetches, which outlive the request that
	// started them.
	Timeout time.Duration
}

const (
	DefaultSize        = 512
	DefaultConcurrency = 8
)

// Client is the shared fetch/cache store.
type Client struct {
	cfg    Config
	cache  *lruCache
	group  singleflight.Group
	logger zerolog.Logger
}

// New creates a Client. Fetcher is required.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.Fetcher == nil {
		return nil, errors.New("fetch: fetcher is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = swapi.DefaultBaseURL
	}
	if cfg.Size <= 0 {
		cfg.Size = DefaultSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	return &Client{
		cfg:    cfg,
		cache:  newLRUCache(cfg.Size, cfg.TTL, time.Now),
		logger: logger,
	}, nil
}

// Config returns the configuration the client was built with, defaults
// applied.
func (c *Client) Config() Config {
	return c.cfg
}

// Key normalizes a full resource URL against the configured base.
func (c *Client) Key(url string) string {
	return swapi.KeyFor(c.cfg.BaseURL, url)
}

// Cached returns the resolved body for key without fetching.
func (c *Client) Cached(key string) ([]byte, bool) {
	return c.cache.get(key)
}

// Get is the suspending read. Cached bodies are returned directly.
// Otherwise, in suspense mode and outside a blocking context, the fetch
// is started in the background and a *SuspendedError is returned.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if body, ok := c.cache.get(key); ok {
		return body, nil
	}
	if !c.Suspends(ctx) {
		return c.Read(ctx, key)
	}
	c.start(ctx, key)
	return nil, &SuspendedError{Key: key}
}

// Suspends reports whether an uncached read under ctx suspends rather
// than blocks.
func (c *Client) Suspends(ctx context.Context) bool {
	return c.cfg.Suspense && !IsBlocking(ctx)
}

// Read returns the body for key, waiting for an in-flight or new request
// if it is not cached.
func (c *Client) Read(ctx context.Context, key string) ([]byte, error) {
	if body, ok := c.cache.get(key); ok {
		return body, nil
	}

	select {
	case res := <-c.start(ctx, key):
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ReadAll waits for every key concurrently. It returns the first error.
func (c *Client) ReadAll(ctx context.Context, keys ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)

	for _, key := range keys {
		g.Go(func() error {
			_, err := c.Read(ctx, key)
			return err
		})
	}
	return g.Wait()
}

// Preload starts fetches for every uncached key without waiting.
func (c *Client) Preload(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if _, ok := c.cache.get(key); ok {
			continue
		}
		c.start(ctx, key)
	}
}

// Len returns the number of cached bodies.
func (c *Client) Len() int {
	return c.cache.len()
}

// Clear drops every cached body. In-flight requests are not affected.
func (c *Client) Clear() {
	c.cache.clear()
}

// start joins or starts the flight for key. The fetch is detached from
// ctx's cancellation so a request that goes away does not fail the other
// waiters.
func (c *Client) start(ctx context.Context, key string) <-chan singleflight.Result {
	return c.group.DoChan(key, func() (any, error) {
		if body, ok := c.cache.get(key); ok {
			return body, nil
		}

		fctx := context.WithoutCancel(ctx)
		if c.cfg.Timeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(fctx, c.cfg.Timeout)
			defer cancel()
		}

		started := time.Now()
		body, err := c.cfg.Fetcher(fctx, key)
		if err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("Fetch failed")
			return nil, err
		}

		c.cache.put(key, body)
		c.logger.Debug().
			Str("key", key).
			Int("bytes", len(body)).
			Dur("took", time.Since(started)).
			Msg("Fetched resource")
		return body, nil
	})
}

// Use reads key through the Client in ctx and decodes it into T. It
// suspends or fails exactly like Client.Get.
func Use[T any](ctx context.Context, key string) (T, error) {
	var v T

	c := FromContext(ctx)
	if c == nil {
		return v, ErrNoClient
	}

	body, err := c.Get(ctx, key)
	if err != nil {
		return v, err
	}

	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrDecode, key, err)
	}
	return v, nil
}
