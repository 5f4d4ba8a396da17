package swfilms

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/pthm/swfilms/internal/fetch"
)

// Serve handles a request for component c: it decodes props from the
// "p" query parameter, hydrates them, and renders the component under a
// blocking fetch context. Only GET and HEAD on the component root are
// routed.
//
// Components implement HXServeHTTP by delegating here:
//
//	func (c *Films) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    swfilms.Serve(w, r, c.Component, c)
//	}
func Serve[P any](w http.ResponseWriter, r *http.Request, c *Component[P], lc Lifecycle[P]) {
	path := strings.TrimPrefix(r.URL.Path, c.Prefix())
	if path != "/" && path != "" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var props P
	if encoded := r.URL.Query().Get("p"); encoded != "" {
		if c.Encoder() == nil {
			c.fail(w, r, ErrInvalidFormat)
			return
		}
		if err := c.Encoder().Decode(encoded, c.IsSensitive(), &props); err != nil {
			c.fail(w, r, wrapEncodingError(err))
			return
		}
	}

	ctx := fetch.WithBlocking(r.Context())

	if err := lc.Hydrate(ctx, &props); err != nil {
		c.fail(w, r, fmt.Errorf("%w: %w", ErrHydrationFailed, err))
		return
	}

	var buf bytes.Buffer
	if err := lc.Render(ctx, props).Render(ctx, &buf); err != nil {
		c.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (c *Component[P]) fail(w http.ResponseWriter, r *http.Request, err error) {
	if c.onError != nil {
		c.onError(w, r, err)
		return
	}
	http.Error(w, "Internal error", http.StatusInternalServerError)
}
