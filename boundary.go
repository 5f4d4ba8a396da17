package swfilms

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"

	"github.com/pthm/swfilms/internal/fetch"
)

// State is the lifecycle of a Boundary.
type State int

const (
	Pending State = iota
	Resolved
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// CanTransition reports whether a boundary in state s may move to next.
// Only Pending moves; Resolved and Failed are final.
func (s State) CanTransition(next State) bool {
	return s == Pending && (next == Resolved || next == Failed)
}

// Boundary pairs a loading placeholder with an error fallback around
// arbitrary content. Both fallbacks are fixed at construction.
//
// A Boundary is a templ.Component. Rendering never returns the content's
// error: suspension and failure are contained and replaced by the
// placeholder or fallback, so siblings and ancestors are unaffected.
type Boundary struct {
	loading  templ.Component
	fallback templ.Component
	content  templ.Component
	resume   string
	name     string

	mu    sync.Mutex
	state State
	err   error
}

// BoundaryOption configures a Boundary.
type BoundaryOption func(*Boundary)

// WithResume sets the URL the pending placeholder fetches to replace
// itself with resolved content.
func WithResume(url string) BoundaryOption {
	return func(b *Boundary) {
		b.resume = url
	}
}

// WithName labels the boundary in logs.
func WithName(name string) BoundaryOption {
	return func(b *Boundary) {
		b.name = name
	}
}

// Suspense builds a Boundary: an error boundary around a loading boundary
// around content.
func Suspense(loading, fallback, content templ.Component, opts ...BoundaryOption) *Boundary {
	b := &Boundary{
		loading:  loading,
		fallback: fallback,
		content:  content,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State returns the state reached by the last render.
func (b *Boundary) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Err returns the error that moved the boundary to Failed, if any.
func (b *Boundary) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Render implements templ.Component.
func (b *Boundary) Render(ctx context.Context, w io.Writer) error {
	if b.State() == Failed {
		return renderOptional(ctx, w, b.fallback)
	}

	logger := zerolog.Ctx(ctx)

	var buf bytes.Buffer
	err := b.content.Render(contentContext(ctx), &buf)

	switch {
	case err == nil:
		b.transition(Resolved, nil)
		_, err = w.Write(buf.Bytes())
		return err

	case fetch.IsSuspended(err):
		logger.Debug().Str("boundary", b.name).Err(err).Msg("Boundary suspended")
		return b.renderPending(ctx, w)

	default:
		b.transition(Failed, err)
		logger.Warn().Str("boundary", b.name).Err(err).Msg("Boundary caught error")
		return renderOptional(ctx, w, b.fallback)
	}
}

func (b *Boundary) transition(next State, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.state.CanTransition(next) {
		// A resolved boundary may render again; keep it resolved.
		return
	}
	b.state = next
	b.err = err
}

// renderPending writes the placeholder wrapper. With a resume URL the
// wrapper swaps itself for the resolved fragment once loaded.
func (b *Boundary) renderPending(ctx context.Context, w io.Writer) error {
	if _, err := io.WriteString(w, `<div class="suspense"`); err != nil {
		return err
	}
	if b.resume != "" {
		if err := writeAttrs(w, ResumeAttrs(b.resume)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `>`); err != nil {
		return err
	}
	if err := renderOptional(ctx, w, b.loading); err != nil {
		return err
	}
	_, err := io.WriteString(w, `</div>`)
	return err
}

// ResumeAttrs returns the HTMX attributes that load url into the element
// as soon as it is inserted, replacing the element itself.
func ResumeAttrs(url string) []Attr {
	return []Attr{
		{Name: "hx-get", Value: url},
		{Name: "hx-trigger", Value: "load"},
		{Name: "hx-swap", Value: string(SwapOuter)},
	}
}

// Attr is one HTML attribute. Order is preserved when written.
type Attr struct {
	Name  string
	Value string
}

func writeAttrs(w io.Writer, attrs []Attr) error {
	for _, a := range attrs {
		if _, err := io.WriteString(w, ` `+a.Name+`="`+templ.EscapeString(a.Value)+`"`); err != nil {
			return err
		}
	}
	return nil
}

func renderOptional(ctx context.Context, w io.Writer, c templ.Component) error {
	if c == nil {
		return nil
	}
	return c.Render(ctx, w)
}

type boundaryDepthKey struct{}

// contentContext marks ctx as inside a boundary. A blocking read applies
// only to the outermost boundary of a resumed fragment; nested boundaries
// suspend and resume on their own.
func contentContext(ctx context.Context) context.Context {
	if inside, _ := ctx.Value(boundaryDepthKey{}).(bool); inside {
		return fetch.WithoutBlocking(ctx)
	}
	return context.WithValue(ctx, boundaryDepthKey{}, true)
}
