package htmlcard

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle for consumers that want
// the built-in card markup out of the box.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
