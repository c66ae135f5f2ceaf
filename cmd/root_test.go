package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenqz/tagparser/core"
	"github.com/tenqz/tagparser/core/output"
)

// run executes a fresh root command and returns what it printed.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)
	c := newRootCmd()
	var stdout, stderr bytes.Buffer
	c.SetOut(&stdout)
	c.SetErr(&stderr)
	c.SetArgs(args)
	err := c.Execute()
	return stdout.String(), stderr.String(), err
}

func TestUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"markup only", []string{"<a>x</a>"}},
		{"file without tag", []string{"--file", "page.html"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, usage, out)
		})
	}
}

func TestExtractFromArgument(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "all tags",
			args: []string{"<a href='https://example.com'>Link</a>", "a"},
			want: `["<a href='https://example.com'>Link</a>"]`,
		},
		{
			name: "attribute present",
			args: []string{"<a href='https://example.com'>Link</a><a class='button' href='#'>Button</a>", "a", "class"},
			want: `["<a class='button' href='#'>Button</a>"]`,
		},
		{
			name: "attribute value",
			args: []string{"<a class='button'>Button 1</a><a class='link'>Link</a>", "a", "class", "button"},
			want: `["<a class='button'>Button 1</a>"]`,
		},
		{
			name: "content",
			args: []string{"<a href='https://example.com'>Example</a><a href='#'>Home</a>", "a", "--content"},
			want: `["Example", "Home"]`,
		},
		{
			name: "empty content",
			args: []string{"<p></p>", "p", "--content"},
			want: `[""]`,
		},
		{
			name: "attribute values",
			args: []string{"<a href='https://example.com'>Example</a><a href='https://github.com'>GitHub</a>", "a", "href", "--attr-values"},
			want: `["https://example.com", "https://github.com"]`,
		},
		{
			name: "no match",
			args: []string{"<div>x</div>", "span"},
			want: `[]`,
		},
		{
			name: "unclosed tag",
			args: []string{"<a href='x'>unclosed", "a"},
			want: `[]`,
		},
		{
			name: "invalid tag name",
			args: []string{"<a>x</a>", "a b"},
			want: `[]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestInvalidNameWarns(t *testing.T) {
	_, logs, err := run(t, "<a>x</a>", "a", "cl=ass")
	require.NoError(t, err)
	assert.Contains(t, logs, "attribute name can never match")
}

func TestFlagErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"content with attr-values", []string{"<a>x</a>", "a", "href", "--content", "--attr-values"}, "mutually exclusive"},
		{"attr-values without name", []string{"<a>x</a>", "a", "--attr-values"}, "requires an attribute name"},
		{"file with url", []string{"--file", "x.html", "--url", "https://example.com", "a"}, "mutually exclusive"},
		{"crawl without url", []string{"--crawl", "<a>x</a>", "a"}, "--crawl requires --url"},
		{"bad url", []string{"--url", "example.com", "a"}, "invalid URL"},
		{"too many arguments", []string{"<a>x</a>", "a", "class", "b", "extra"}, "too many arguments"},
		{"unknown format", []string{"--format", "xml", "<a>x</a>", "a"}, "unknown output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, out)
		})
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte(`<ul><li class="x">one</li><li>two</li></ul>`), 0644))

	out, _, err := run(t, "--file", path, "li", "--content")
	require.NoError(t, err)
	assert.Equal(t, `["one", "two"]`+"\n", out)

	out, _, err = run(t, "--file", path, "li", "class", "x", "--format", "lines")
	require.NoError(t, err)
	assert.Equal(t, `<li class="x">one</li>`+"\n", out)
}

func TestFileSourceMissing(t *testing.T) {
	out, _, err := run(t, "--file", filepath.Join(t.TempDir(), "missing.html"), "a")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, out)
}

func TestURLSourceJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><body><h1 id="t">Title</h1><img src="a.png"/></body></html>`)
	}))
	defer srv.Close()

	out, _, err := run(t, "--url", srv.URL, "h1", "--format", "json")
	require.NoError(t, err)

	var res core.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, srv.URL, res.Source)
	assert.Equal(t, core.OpTags, res.Operation)
	assert.Equal(t, "h1", res.Tag)
	assert.Equal(t, []string{`<h1 id="t">Title</h1>`}, res.Matches)
	assert.NotEmpty(t, res.ExtractedAt)
}

func TestURLSourceStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, _, err := run(t, "--url", srv.URL, "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCrawl(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<h1>Home</h1><a href="/about">About</a>`)
		case "/about":
			fmt.Fprint(w, `<h1>About</h1><a href="/">Home</a>`)
		default:
			http.NotFound(w, r)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	out, _, err := run(t, "--url", srv.URL+"/", "--crawl", "h1", "--content")
	require.NoError(t, err)
	assert.Equal(t, `["Home", "About"]`+"\n", out)
}

func TestOutputDir(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, "--output_dir", dir, "--format", "markdown", "<p>Hello <b>world</b></p>", "p")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(filepath.Join(dir, "inline_p.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hello **world**")
}

func TestPDFNeedsOutputDir(t *testing.T) {
	_, _, err := run(t, "--format", "pdf", "<p>x</p>", "p")
	require.Error(t, err)
	assert.True(t, errors.Is(err, output.ErrBinaryToTerminal))

	dir := t.TempDir()
	_, _, err = run(t, "--format", "pdf", "--output_dir", dir, "<p>x</p>", "p")
	require.NoError(t, err)
	info, err := os.Stat(filepath.Join(dir, "inline_p.pdf"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
