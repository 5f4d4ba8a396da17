package swapi

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	timeout      time.Duration
	maxRetries   int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	userAgent    string
	transport    http.RoundTripper
	httpClient   *http.Client
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:      15 * time.Second,
		maxRetries:   2,
		retryWaitMin: 250 * time.Millisecond,
		retryWaitMax: 2 * time.Second,
		userAgent:    "swfilms/1.0",
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithMaxRetries sets the maximum number of retries after the first attempt.
func WithMaxRetries(retries int) Option {
	return func(o *clientOptions) {
		if retries >= 0 {
			o.maxRetries = retries
		}
	}
}

// WithRetryWait bounds the backoff between attempts.
func WithRetryWait(min, max time.Duration) Option {
	return func(o *clientOptions) {
		if min > 0 && max >= min {
			o.retryWaitMin = min
			o.retryWaitMax = max
		}
	}
}

// WithTransport sets the RoundTripper that each attempt goes through.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.transport = rt
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithHTTPClient replaces the HTTP client. Timeout and retry options are
// ignored when it is set.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}
