package server

import (
	"crypto/rand"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pthm/swfilms"
)

// MountOption configures Mount.
type MountOption func(*mountOptions)

type mountOptions struct {
	key []byte
}

// WithKey sets the key that signs component props.
// If not provided, a random key is generated, so resume URLs only stay
// valid for the lifetime of the process.
func WithKey(key []byte) MountOption {
	return func(o *mountOptions) {
		o.key = key
	}
}

// ComponentPath is where component routes are mounted.
const ComponentPath = "/_c/"

// Mount creates a registry and mounts its handler on an Echo instance.
//
//	e := echo.New()
//	reg := server.Mount(e)
//	set := components.Init(reg, components.Options{})
func Mount(e *echo.Echo, opts ...MountOption) *swfilms.Registry {
	reg := newRegistry(opts)
	e.GET(ComponentPath+"*", echo.WrapHandler(reg.Handler()))
	e.HEAD(ComponentPath+"*", echo.WrapHandler(reg.Handler()))
	return reg
}

func newRegistry(opts []MountOption) *swfilms.Registry {
	o := &mountOptions{}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("server: failed to generate random key: %v", err))
		}
	}

	reg := swfilms.NewRegistry(key)

	// Log what escaped the component's boundaries, then answer as before.
	respond := reg.OnError
	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("Component request failed")
		respond(w, r, err)
	}

	return reg
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return server.Render(c, components.Page(films))
//	}
func Render(c echo.Context, component templ.Component) error {
	return swfilms.Render(c.Response(), c.Request(), component)
}
