package fetch

import "context"

type clientKey struct{}
type blockingKey struct{}

// WithClient returns a context that carries c. Everything rendered under
// that context reads through c.
func WithClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

// FromContext returns the Client carried by ctx, or nil.
func FromContext(ctx context.Context) *Client {
	c, _ := ctx.Value(clientKey{}).(*Client)
	return c
}

// WithBlocking marks ctx so reads wait for data instead of suspending.
// Resume endpoints render under a blocking context.
func WithBlocking(ctx context.Context) context.Context {
	return context.WithValue(ctx, blockingKey{}, true)
}

// WithoutBlocking clears a mark set by WithBlocking.
func WithoutBlocking(ctx context.Context) context.Context {
	if !IsBlocking(ctx) {
		return ctx
	}
	return context.WithValue(ctx, blockingKey{}, false)
}

// IsBlocking reports whether ctx was marked by WithBlocking.
func IsBlocking(ctx context.Context) bool {
	b, _ := ctx.Value(blockingKey{}).(bool)
	return b
}
