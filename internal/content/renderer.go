// Package content renders blog post markdown bodies to HTML fragments for
// the blog API.
package content

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts markdown to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a markdown renderer with GFM tables and strikethrough
// enabled. Raw HTML in post bodies is escaped; post content is editorial but
// the rendered fragments are served verbatim.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.Linkify,
			),
		),
	}
}

// Render converts a markdown body to an HTML fragment.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
