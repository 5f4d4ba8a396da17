package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Fixed fallback texts.
const (
	FilmsLoadingText   = "Loading..."
	FilmsErrorText     = "Could not fetch films."
	CharacterErrorText = "Error fetching data"
)

func static(html string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}

// FilmsLoading is the page boundary's loading content.
func FilmsLoading() templ.Component {
	return static(`<h3>` + FilmsLoadingText + `</h3>`)
}

// FilmsError is the page boundary's fallback.
func FilmsError() templ.Component {
	return static(`<h2>` + FilmsErrorText + `</h2>`)
}

// Spinner is the loading content of nested boundaries.
func Spinner() templ.Component {
	return static(`<span class="spinner" role="progressbar" aria-busy="true"></span>`)
}

// Alert renders a fixed error message.
func Alert(message string) templ.Component {
	return static(`<div class="alert alert-error" role="alert">` + templ.EscapeString(message) + `</div>`)
}
