package render

import (
	"strconv"
	"strings"

	"github.com/tenqz/tagparser/core"
)

// DebugRenderer prints matches as a quoted list: ["a", "b"], or [] when
// there are none. It is the default format.
type DebugRenderer struct{}

// NewDebugRenderer creates a DebugRenderer.
func NewDebugRenderer() *DebugRenderer {
	return &DebugRenderer{}
}

// Render formats the matches on a single line.
func (r *DebugRenderer) Render(res core.Result) ([]byte, error) {
	return []byte(FormatList(res.Matches) + "\n"), nil
}

// Extension returns the file extension for debug output.
func (r *DebugRenderer) Extension() string {
	return ".txt"
}

// FormatList quotes each string with Go escaping and joins them in brackets.
func FormatList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, s := range items {
		quoted = append(quoted, strconv.Quote(s))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// LinesRenderer prints one match per line.
type LinesRenderer struct{}

// NewLinesRenderer creates a LinesRenderer.
func NewLinesRenderer() *LinesRenderer {
	return &LinesRenderer{}
}

// Render writes each match followed by a newline.
func (r *LinesRenderer) Render(res core.Result) ([]byte, error) {
	var b strings.Builder
	for _, m := range res.Matches {
		b.WriteString(m)
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for line output.
func (r *LinesRenderer) Extension() string {
	return ".txt"
}
