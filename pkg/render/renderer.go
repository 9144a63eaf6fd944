// Package render defines the renderer contract for presented models and a
// registry for renderer discovery. Renderers turn a presenter's attribute
// view into bytes (HTML, plain text, etc.) without touching presentation
// semantics.
package render

import (
	"context"

	presenter "github.com/goliatone/go-presenter"
)

// Renderer converts a presented model into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, p *presenter.Presenter, options RenderOptions) ([]byte, error)
}
