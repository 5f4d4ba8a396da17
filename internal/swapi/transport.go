package swapi

import (
	"net/http"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// userAgentTransport sets the User-Agent on every attempt that lacks one.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" && t.userAgent != "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}

// retryLogger routes retryablehttp's leveled logging into zerolog.
// Failed attempts are warnings: the final error reaches the caller anyway.
type retryLogger struct {
	logger zerolog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

// newHTTPClient retries transport errors, 429 and 5xx responses with
// exponential backoff between attempts. Once retries are exhausted the
// last response is returned as-is, so status handling stays with Fetch.
func newHTTPClient(o clientOptions, logger zerolog.Logger) *http.Client {
	if o.httpClient != nil {
		return o.httpClient
	}

	base := o.transport
	if base == nil {
		base = cleanhttp.DefaultPooledTransport()
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{
		Transport: &userAgentTransport{base: base, userAgent: o.userAgent},
		Timeout:   o.timeout,
	}
	rc.RetryMax = o.maxRetries
	rc.RetryWaitMin = o.retryWaitMin
	rc.RetryWaitMax = o.retryWaitMax
	rc.Logger = retryLogger{logger: logger}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return rc.StandardClient()
}
