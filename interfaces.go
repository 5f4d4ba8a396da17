package swfilms

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
)

// Hydrater is implemented by components to fill props before rendering.
// Called by Serve before Render, under the request's fetch context.
//
// Hydration may read resources through fetch.Use. Reads done here block
// (Serve renders under fetch.WithBlocking), so a failure surfaces as an
// ErrHydrationFailed and reaches Registry.OnError.
type Hydrater[P any] interface {
	Hydrate(ctx context.Context, props *P) error
}

// Renderer is implemented by components to produce templ output.
//
// Render should be pure: data access happens inside the returned
// component, where a Boundary can catch its suspension or failure.
type Renderer[P any] interface {
	Render(ctx context.Context, props P) templ.Component
}

// Lifecycle combines Hydrater and Renderer.
type Lifecycle[P any] interface {
	Hydrater[P]
	Renderer[P]
}

// HXComponent is implemented by every routable component.
//
// HXPrefix returns the unique URL prefix for this component instance.
// HXServeHTTP handles all HTTP requests for the component's routes,
// typically by delegating to Serve.
type HXComponent interface {
	HXPrefix() string
	HXServeHTTP(w http.ResponseWriter, r *http.Request)
}
