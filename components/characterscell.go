package components

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pthm/swfilms"
	"github.com/pthm/swfilms/internal/fetch"
	"github.com/pthm/swfilms/lib/encoding"
)

// CharactersCellProps is the ordered list of character resource URLs of
// one film.
type CharactersCellProps struct {
	Characters []string
}

func (p CharactersCellProps) HXEncode() map[string]any {
	if len(p.Characters) == 0 {
		return map[string]any{}
	}
	return map[string]any{"c": p.Characters}
}

func (p *CharactersCellProps) HXDecode(m map[string]any) error {
	p.Characters = encoding.Strings(m["c"])
	return nil
}

// CharactersCell renders character names comma-separated, in input order,
// inside one shared boundary.
type CharactersCell struct {
	*swfilms.Component[CharactersCellProps]
	name *CharacterName
}

// NewCharactersCell creates a new CharactersCell component.
func NewCharactersCell(name *CharacterName) *CharactersCell {
	return &CharactersCell{
		Component: swfilms.New[CharactersCellProps]("characterscell"),
		name:      name,
	}
}

// Hydrate is a no-op; names are read while rendering.
func (c *CharactersCell) Hydrate(ctx context.Context, props *CharactersCellProps) error {
	return nil
}

// Render produces the HTML output.
func (c *CharactersCell) Render(ctx context.Context, props CharactersCellProps) templ.Component {
	return c.Suspense(props, c.list(props), Spinner(), Alert(CharacterErrorText))
}

// list starts every lookup before the first leaf renders, so the cell
// resolves as soon as its slowest character does.
func (c *CharactersCell) list(props CharactersCellProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if client := fetch.FromContext(ctx); client != nil && len(props.Characters) > 0 {
			keys := make([]string, len(props.Characters))
			for i, url := range props.Characters {
				keys[i] = client.Key(url)
			}
			if client.Suspends(ctx) {
				client.Preload(ctx, keys...)
			} else if err := client.ReadAll(ctx, keys...); err != nil {
				return err
			}
		}

		h := newHTMLWriter(ctx, w)
		for idx, url := range props.Characters {
			h.raw(`<span>`)
			if idx > 0 {
				h.raw(`, `)
			}
			h.render(c.name.View(url))
			h.raw(`</span>`)
		}
		return h.err
	})
}

func (c *CharactersCell) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	swfilms.Serve(w, r, c.Component, c)
}
