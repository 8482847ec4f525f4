// Package markdown implements the markdown-to-HTML collaborator used for
// info question bodies and freestanding message strings.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// Renderer converts markdown text to HTML using goldmark with CommonMark
// defaults. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a ready-to-use Renderer.
func New() *Renderer {
	return &Renderer{md: goldmark.New()}
}

// Render converts one markdown snippet to HTML. The result is trimmed of the
// trailing newline goldmark appends so snippets embed cleanly into JSON
// string fields.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
