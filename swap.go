package swfilms

// SwapMode defines HTMX swap strategies for how response HTML replaces the target.
//
// See https://htmx.org/attributes/hx-swap/ for visual examples.
type SwapMode string

const (
	// SwapOuter replaces the entire element including its tag (outerHTML).
	// Resume placeholders use it so the fragment takes the placeholder's place.
	SwapOuter SwapMode = "outerHTML"
)
