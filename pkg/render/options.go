package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the presentation pipeline.
type RenderOptions struct {
	// Title overrides the heading a renderer would otherwise derive from
	// the presented attributes.
	Title string

	// Theme carries resolved theme configuration for renderers that emit
	// themed markup. Nil means the renderer falls back to its built-in
	// styling.
	Theme *theme.RendererConfig

	// Extra passes renderer-specific values through verbatim.
	Extra map[string]any
}
