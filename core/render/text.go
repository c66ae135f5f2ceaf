package render

import (
	"fmt"
	"strings"

	"github.com/tenqz/tagparser/core"
	"github.com/tenqz/tagparser/core/normalize"
)

// TextRenderer prints the plain text of each match, one per line.
type TextRenderer struct {
	normalizer core.Normalizer
}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{normalizer: normalize.NewText()}
}

// Render strips markup from each match. Attribute values are printed as-is.
func (r *TextRenderer) Render(res core.Result) ([]byte, error) {
	var b strings.Builder
	for i, m := range res.Matches {
		text := m
		if res.Operation != core.OpAttributeValues {
			var err error
			if text, err = r.normalizer.Normalize(m); err != nil {
				return nil, fmt.Errorf("match %d: %w", i+1, err)
			}
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}
