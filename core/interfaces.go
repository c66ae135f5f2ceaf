// Package core defines the shared types and stage interfaces for tagparser.
// Markup is loaded by a Fetcher, scanned by the extract package, and the
// resulting Result is turned into bytes by a Renderer.
package core

import "context"

// Operation names the extraction that produced a Result.
type Operation string

const (
	// OpTags returns whole tag occurrences.
	OpTags Operation = "tags"
	// OpTagsWithAttribute returns tag occurrences carrying an attribute.
	OpTagsWithAttribute Operation = "tags-with-attribute"
	// OpContent returns the inner text of paired tags.
	OpContent Operation = "content"
	// OpAttributeValues returns attribute values.
	OpAttributeValues Operation = "attr-values"
)

// FetchResult holds loaded markup and where it came from.
type FetchResult struct {
	Source     string
	StatusCode int
	HTML       string
}

// Result is the outcome of one extraction run.
type Result struct {
	Source      string    `json:"source"`
	Operation   Operation `json:"operation"`
	Tag         string    `json:"tag"`
	Attribute   string    `json:"attribute,omitempty"`
	Value       *string   `json:"value,omitempty"`
	Matches     []string  `json:"matches"`
	ExtractedAt string    `json:"extracted_at"` // ISO8601
}

// Fetcher loads markup from a location (URL or file path).
type Fetcher interface {
	Fetch(ctx context.Context, location string) (*FetchResult, error)
}

// Normalizer converts one markup fragment into another textual form.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts a Result into a final output format.
type Renderer interface {
	Render(res Result) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
