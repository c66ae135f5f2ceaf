// Package render provides output renderers for extraction results.
// This file implements the Markdown renderer: one section per match, each
// fragment converted by the markdown normalizer.
package render

import (
	"fmt"
	"strings"

	"github.com/tenqz/tagparser/core"
	"github.com/tenqz/tagparser/core/normalize"
)

// MarkdownRenderer writes a Markdown document with one section per match.
type MarkdownRenderer struct {
	normalizer core.Normalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{normalizer: normalize.New()}
}

// Render converts every match to Markdown under a numbered heading.
// Attribute values are not markup and are written as-is.
func (r *MarkdownRenderer) Render(res core.Result) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title(res))
	fmt.Fprintf(&b, "Source: %s\n", res.Source)

	for i, m := range res.Matches {
		md := m
		if res.Operation != core.OpAttributeValues {
			var err error
			if md, err = r.normalizer.Normalize(m); err != nil {
				return nil, fmt.Errorf("match %d: %w", i+1, err)
			}
		}
		fmt.Fprintf(&b, "\n## Match %d\n\n%s\n", i+1, md)
	}
	if len(res.Matches) == 0 {
		b.WriteString("\nNo matches.\n")
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// title describes the query that produced res.
func title(res core.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s>", res.Tag)
	if res.Attribute != "" {
		fmt.Fprintf(&b, " %s", res.Attribute)
		if res.Value != nil {
			fmt.Fprintf(&b, "=%q", *res.Value)
		}
	}
	fmt.Fprintf(&b, " (%s)", res.Operation)
	return b.String()
}
