// Package plaintext renders a presented model as aligned key/value text,
// suitable for terminals and logs.
package plaintext

import (
	"bytes"
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/cockroachdb/errors"

	presenter "github.com/goliatone/go-presenter"
	"github.com/goliatone/go-presenter/pkg/render"
)

// Renderer writes one attribute per line, tab-aligned.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the plain text renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return "plaintext"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, p *presenter.Presenter, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("plaintext: presenter is required")
	}

	attrs, err := p.ToArray()
	if err != nil {
		return nil, errors.Wrap(err, "plaintext: collect attributes")
	}

	var buf bytes.Buffer
	if options.Title != "" {
		fmt.Fprintln(&buf, options.Title)
		fmt.Fprintln(&buf)
	}

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	for _, pair := range attrs.Pairs() {
		value := pair.Value
		if value == nil {
			value = ""
		}
		fmt.Fprintf(w, "%s\t%v\n", pair.Name, value)
	}
	if err := w.Flush(); err != nil {
		return nil, errors.Wrap(err, "plaintext: flush output")
	}
	return buf.Bytes(), nil
}
