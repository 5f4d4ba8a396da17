package swfilms

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pthm/swfilms/internal/fetch"
)

// TestResult holds the result of rendering a component for testing.
//
// Provides convenience methods for asserting on HTML content, headers,
// status codes and pending boundaries.
type TestResult struct {
	HTML       string
	StatusCode int
	Headers    http.Header
}

// TestRender renders a component with a fetch client and returns testable
// output.
//
// Use this for unit tests of rendering logic when you control props
// directly. It runs only Hydrate + Render under a context carrying client.
//
//	result, err := swfilms.TestRender(client, comp, props)
//	if !result.HTMLContains("A New Hope") {
//	    t.Fatal("missing expected content")
//	}
func TestRender[P any](client *fetch.Client, comp Lifecycle[P], props P) (*TestResult, error) {
	return TestRenderWithContext(fetch.WithClient(context.Background(), client), comp, props)
}

// TestRenderWithContext renders a component with a custom context.
//
// Use this when the test needs a blocking context or a context logger:
//
//	ctx := fetch.WithBlocking(fetch.WithClient(context.Background(), client))
//	result, err := swfilms.TestRenderWithContext(ctx, comp, props)
func TestRenderWithContext[P any](ctx context.Context, comp Lifecycle[P], props P) (*TestResult, error) {
	if err := comp.Hydrate(ctx, &props); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := comp.Render(ctx, props).Render(ctx, &buf); err != nil {
		return nil, err
	}

	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestGet issues a GET against an HXComponent the way a resuming
// placeholder does (HX-Request: true), with client in the request context.
func TestGet(client *fetch.Client, comp HXComponent, url string) *TestResult {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("HX-Request", "true")
	if client != nil {
		req = req.WithContext(fetch.WithClient(req.Context(), client))
	}

	rec := httptest.NewRecorder()
	comp.HXServeHTTP(rec, req)

	return &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}
}

// HTMLContains checks if the HTML contains the given substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the response has the given status code.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// GetHeader returns a response header value.
func (r *TestResult) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// Document parses the HTML for selector-based assertions.
func (r *TestResult) Document() (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(r.HTML))
}

// ResumeURLs returns the hx-get URLs of every pending boundary, in
// document order.
func (r *TestResult) ResumeURLs() []string {
	doc, err := r.Document()
	if err != nil {
		return nil
	}
	var urls []string
	doc.Find("div.suspense[hx-get]").Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("hx-get"); ok {
			urls = append(urls, v)
		}
	})
	return urls
}

// IsPending reports whether any boundary in the output is pending.
func (r *TestResult) IsPending() bool {
	return strings.Contains(r.HTML, `class="suspense"`)
}
