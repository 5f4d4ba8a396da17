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

// CharacterNameProps identifies one character by resource URL.
type CharacterNameProps struct {
	URL string
}

func (p CharacterNameProps) HXEncode() map[string]any {
	if p.URL == "" {
		return map[string]any{}
	}
	return map[string]any{"u": p.URL}
}

func (p *CharacterNameProps) HXDecode(m map[string]any) error {
	if v, ok := m["u"].(string); ok {
		p.URL = v
	}
	return nil
}

// CharacterName renders one character's name. It has no boundary of its
// own: suspension and errors go to whoever renders it.
type CharacterName struct {
	*swfilms.Component[CharacterNameProps]
}

// NewCharacterName creates a new CharacterName component.
func NewCharacterName() *CharacterName {
	return &CharacterName{
		Component: swfilms.New[CharacterNameProps]("charactername"),
	}
}

// Hydrate is a no-op; the name is read while rendering.
func (c *CharacterName) Hydrate(ctx context.Context, props *CharacterNameProps) error {
	return nil
}

// Render produces the HTML output.
func (c *CharacterName) Render(ctx context.Context, props CharacterNameProps) templ.Component {
	return c.View(props.URL)
}

// View reads the character behind url and writes its escaped name.
func (c *CharacterName) View(url string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		client := fetch.FromContext(ctx)
		if client == nil {
			return fetch.ErrNoClient
		}

		person, err := fetch.Use[swapi.Person](ctx, client.Key(url))
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, templ.EscapeString(person.Name))
		return err
	})
}

func (c *CharacterName) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	swfilms.Serve(w, r, c.Component, c)
}
