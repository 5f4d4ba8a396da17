package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HTMXScript loads HTMX, which resumes pending boundaries.
const HTMXScript = `<script src="https://unpkg.com/htmx.org@2.0.4" crossorigin="anonymous"></script>`

const pageStyle = `<style>
body{font-family:system-ui,sans-serif;margin:0}
.container{max-width:960px;margin:0 auto;padding:0 16px}
.table{border-collapse:collapse;width:100%}
.table th,.table td{border-bottom:1px solid #e0e0e0;padding:8px 12px;text-align:left}
.alert-error{background:#fdecea;color:#611a15;padding:6px 12px;border-radius:4px}
.spinner{display:inline-block;width:16px;height:16px;border:2px solid #ccc;border-top-color:#3f51b5;border-radius:50%;animation:spin 1s linear infinite}
@keyframes spin{to{transform:rotate(360deg)}}
</style>`

// Container renders the application body: the heading and the film table
// behind its boundary.
func Container(films *Films) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<main class="container"><h1>Star Wars</h1>`)
		h.render(films.Render(ctx, FilmsProps{}))
		h.raw(`</main>`)
		return h.err
	})
}

// Page renders the full HTML document.
func Page(films *Films) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>Star Wars</title>`)
		h.raw(HTMXScript)
		h.raw(pageStyle)
		h.raw(`</head><body>`)
		h.render(Container(films))
		h.raw(`</body></html>`)
		return h.err
	})
}
