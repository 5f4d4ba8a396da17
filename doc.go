// Package swfilms renders the Star Wars film table as server-side HTML
// components with suspense and error boundaries.
//
// # Components
//
// Components embed *Component[P] where P is the Props type. Props are
// serialized into the component's URL, so they hold only what is needed
// to reconstruct the view (resource URLs, never fetched records).
//
//	type CharactersCell struct {
//	    *swfilms.Component[CharactersCellProps]
//	}
//
// The lifecycle is formalized through two interfaces:
//   - Hydrater[P]: Hydrate(ctx, *P) fills props before rendering
//   - Renderer[P]: Render(ctx, P) produces the templ.Component output
//
// # Boundaries
//
// Suspense wraps content in a Boundary. The boundary renders its content
// into a buffer and ends in one of three states:
//
//   - Resolved: the content rendered, and its output is written
//   - Pending: the content suspended on a resource that is still being
//     fetched, so the loading placeholder is written instead
//   - Failed: the content returned an error, so the fallback is written
//
// A pending placeholder produced by Component.Suspense carries an hx-get
// pointing at the component's endpoint, with hx-trigger="load" and
// hx-swap="outerHTML". The browser requests the fragment as soon as the
// placeholder lands. The endpoint renders under a blocking fetch context,
// so it answers with resolved content or with the fallback. Failed is
// terminal and never retries.
//
// Errors that escape every boundary reach Registry.OnError.
//
// # Registration and Routing
//
// Components are registered explicitly with a Registry:
//
//	reg := swfilms.NewRegistry(key)
//	reg.Add(films, cell, name)
//	mux.Handle("/_c/", reg.Handler())
//
// Each component receives a unique URL prefix based on its name and source
// location hash. The registry prevents prefix collisions at registration
// time.
package swfilms
