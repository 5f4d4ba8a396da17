package components

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pthm/swfilms"
	"github.com/pthm/swfilms/internal/fetch"
	"github.com/pthm/swfilms/internal/swapi"
)

// FilmsProps has no fields: the collection lives under a fixed key.
type FilmsProps struct{}

func (p FilmsProps) HXEncode() map[string]any {
	return map[string]any{}
}

func (p *FilmsProps) HXDecode(m map[string]any) error {
	return nil
}

// Films renders the film table behind the page-level boundary.
type Films struct {
	*swfilms.Component[FilmsProps]
	cell      *CharactersCell
	showNames bool
}

// NewFilms creates a new Films component. With showNames the characters
// column lists names through cell; otherwise it shows the count.
func NewFilms(cell *CharactersCell, showNames bool) *Films {
	return &Films{
		Component: swfilms.New[FilmsProps]("films"),
		cell:      cell,
		showNames: showNames,
	}
}

// Hydrate is a no-op; the collection is read while rendering.
func (c *Films) Hydrate(ctx context.Context, props *FilmsProps) error {
	return nil
}

// Render produces the HTML output.
func (c *Films) Render(ctx context.Context, props FilmsProps) templ.Component {
	return c.Suspense(props, c.table(), FilmsLoading(), FilmsError())
}

func (c *Films) table() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		films, err := fetch.Use[swapi.FilmList](ctx, swapi.FilmsKey)
		if err != nil {
			return err
		}

		h := newHTMLWriter(ctx, w)
		h.raw(`<section class="films"><h2>Films `)
		h.int(len(films.Results))
		h.raw(`</h2><p>Count: `)
		h.int(len(films.Results))
		h.raw(`</p>`)
		h.raw(`<div class="table-container"><table class="table">`)
		h.raw(`<thead><tr><th>Nr.</th><th>Name</th><th>Episode</th><th>Date</th><th>Characters</th></tr></thead>`)
		h.raw(`<tbody>`)
		for idx, f := range films.Results {
			h.raw(`<tr data-key="`)
			h.int(f.EpisodeID)
			h.raw(`"><td>`)
			h.int(idx + 1)
			h.raw(`</td><td>`)
			h.text(f.Title)
			h.raw(`</td><td>`)
			h.int(f.EpisodeID)
			h.raw(`</td><td>`)
			h.text(f.ReleaseDate)
			h.raw(`</td><td>`)
			c.characters(h, f)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></div></section>`)
		return h.err
	})
}

func (c *Films) characters(h *htmlWriter, f swapi.Film) {
	if c.showNames && c.cell != nil {
		props := CharactersCellProps{Characters: f.Characters}
		h.render(c.cell.Render(h.ctx, props))
		return
	}
	h.int(len(f.Characters))
}

func (c *Films) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	swfilms.Serve(w, r, c.Component, c)
}
