// JSON renderer.
// Emits the Result with its query parameters so downstream tools can consume
// matches without re-parsing the debug list.

package render

import (
	"encoding/json"
	"fmt"

	"github.com/tenqz/tagparser/core"
)

// JSONRenderer produces indented JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals res. Matches is always an array, never null.
func (r *JSONRenderer) Render(res core.Result) ([]byte, error) {
	if res.Matches == nil {
		res.Matches = []string{}
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
