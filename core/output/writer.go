// Package output handles file naming and writing for tagparser results.
// Without an output directory results go to the provided stream; with one,
// file names are derived from the markup source and the tag
// (e.g. example_com_docs_a.json, page_h2.md).
package output

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrBinaryToTerminal is returned when binary output has no output directory.
var ErrBinaryToTerminal = errors.New("binary output requires an output directory")

// Writer writes rendered output to a stream or to disk.
type Writer struct {
	OutputDir string
	Stdout    io.Writer
}

// New creates a Writer. An empty outputDir selects stdout; otherwise the
// directory is created if needed.
func New(outputDir string, stdout io.Writer) (*Writer, error) {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Writer{OutputDir: outputDir, Stdout: stdout}, nil
}

// Write stores data for the given source and tag. It returns the written
// path, or "" when data went to the stream.
func (w *Writer) Write(source, tag string, data []byte, ext string, binary bool) (string, error) {
	if w.OutputDir == "" {
		if binary {
			return "", ErrBinaryToTerminal
		}
		if _, err := w.Stdout.Write(data); err != nil {
			return "", fmt.Errorf("writing output: %w", err)
		}
		return "", nil
	}

	name := FileName(source, tag)
	path := filepath.Join(w.OutputDir, name+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// FileName derives a flat file name from a source and tag.
// URLs use host and path, file paths their base name without extension and
// inline markup the word "inline".
func FileName(source, tag string) string {
	base := "inline"
	if source != "" {
		base = sourceName(source)
	}
	return base + "_" + sanitize(tag)
}

// sourceName converts a URL or path into a flat name.
// Example: https://example.com/docs/intro → example_com_docs_intro
func sourceName(source string) string {
	parsed, err := url.Parse(source)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		b := filepath.Base(source)
		return sanitize(strings.TrimSuffix(b, filepath.Ext(b)))
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
