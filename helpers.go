package swfilms

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
)

// Render writes a templ component to the HTTP response.
//
// The component renders into a buffer first so a failing render can still
// produce a clean error response instead of a truncated page.
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    swfilms.Render(w, r, components.Page(...))
//	}
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	var buf bytes.Buffer
	if err := component.Render(r.Context(), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := w.Write(buf.Bytes())
	return err
}

// IsHTMX returns true if the request originated from HTMX.
//
// HTMX sends HX-Request: true on all requests, including the resume
// requests of pending boundaries.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
