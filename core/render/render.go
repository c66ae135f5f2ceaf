package render

import (
	"fmt"
	"sort"

	"github.com/tenqz/tagparser/core"
)

// DefaultFormat is used when no format is configured.
const DefaultFormat = "debug"

var renderers = map[string]func() core.Renderer{
	"debug":    func() core.Renderer { return NewDebugRenderer() },
	"lines":    func() core.Renderer { return NewLinesRenderer() },
	"json":     func() core.Renderer { return NewJSONRenderer() },
	"text":     func() core.Renderer { return NewTextRenderer() },
	"markdown": func() core.Renderer { return NewMarkdownRenderer() },
	"pdf":      func() core.Renderer { return NewPDFRenderer() },
}

// New returns the renderer registered for format.
func New(format string) (core.Renderer, error) {
	if format == "" {
		format = DefaultFormat
	}
	ctor, ok := renderers[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (want one of %v)", format, Formats())
	}
	return ctor(), nil
}

// Formats lists the registered format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBinary reports whether r produces output unfit for a terminal.
func IsBinary(r core.Renderer) bool {
	b, ok := r.(interface{ Binary() bool })
	return ok && b.Binary()
}
