package swfilms

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/a-h/templ"
)

// Component[P] is the base type embedded by user components.
// P is the Props type for this component.
//
// Example:
//
//	type Films struct {
//	    *swfilms.Component[FilmsProps]
//	}
//
//	func NewFilms() *Films {
//	    return &Films{Component: swfilms.New[FilmsProps]("films")}
//	}
//
// Each component instance receives a deterministic URL prefix based on its
// name and source location (file:line), ensuring uniqueness without manual
// coordination.
type Component[P any] struct {
	name      string
	prefix    string
	sensitive bool
	encoder   *Encoder
	onError   func(http.ResponseWriter, *http.Request, error)
}

// New creates a new component with the given name.
//
// By default, props are signed (visible in URLs but tamper-proof via HMAC).
// Call .Sensitive() to encrypt them instead.
func New[P any](name string) *Component[P] {
	prefix := "/_c/" + name + "-" + componentHash(name, 1)
	return &Component[P]{
		name:   name,
		prefix: prefix,
	}
}

// Sensitive marks the component as sensitive, enabling full encryption.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

// Name returns the component's name.
func (c *Component[P]) Name() string {
	return c.name
}

// Prefix returns the component's URL prefix.
func (c *Component[P]) Prefix() string {
	return c.prefix
}

// HXPrefix satisfies HXComponent.
func (c *Component[P]) HXPrefix() string {
	return c.prefix
}

// IsSensitive returns whether the component uses encrypted props.
func (c *Component[P]) IsSensitive() bool {
	return c.sensitive
}

// SetEncoder sets the encoder for this component (called by registry).
func (c *Component[P]) SetEncoder(enc *Encoder) {
	c.encoder = enc
}

// Encoder returns the encoder for this component.
func (c *Component[P]) Encoder() *Encoder {
	return c.encoder
}

// SetErrorHandler sets the handler for errors that escape the component's
// boundaries (called by registry).
func (c *Component[P]) SetErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) {
	c.onError = fn
}

// URL returns the GET URL that renders the component with props.
func (c *Component[P]) URL(props P) string {
	path := c.prefix + "/"

	if c.encoder == nil {
		return path
	}

	encoded, err := c.encoder.Encode(props, c.sensitive)
	if err != nil {
		return path
	}
	if encoded == "" {
		return path
	}

	return path + "?p=" + encoded
}

// Suspense wraps view in a Boundary whose pending placeholder resumes from
// this component's endpoint with props.
//
//	func (c *Films) Render(ctx context.Context, props FilmsProps) templ.Component {
//	    return c.Suspense(props, filmsView(props), loading(), fallback())
//	}
func (c *Component[P]) Suspense(props P, view, loading, fallback templ.Component) *Boundary {
	return Suspense(loading, fallback, view, WithResume(c.URL(props)), WithName(c.name))
}

// componentHash generates a deterministic hash based on component name and source location.
func componentHash(name string, skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	var input string
	if ok {
		// Use base filename only for portability across environments
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	} else {
		input = name
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4]) // 8 hex chars
}
