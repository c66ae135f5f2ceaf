// Package normalize implements the Normalizer interface.
// It turns one extracted markup fragment into Markdown or plain text for the
// markdown and text output formats.
package normalize

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts an HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

// TextNormalizer reduces an HTML fragment to its text content.
type TextNormalizer struct{}

// NewText creates a TextNormalizer.
func NewText() *TextNormalizer {
	return &TextNormalizer{}
}

// Normalize parses the fragment and returns its text with whitespace runs
// collapsed to single spaces. Entities are decoded by the HTML parser.
func (n *TextNormalizer) Normalize(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
