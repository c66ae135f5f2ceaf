package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenqz/tagparser/core"
)

func result(op core.Operation, matches ...string) core.Result {
	return core.Result{
		Source:      "inline",
		Operation:   op,
		Tag:         "a",
		Matches:     matches,
		ExtractedAt: "2026-10-18T00:00:00Z",
	}
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "[]", FormatList(nil))
	assert.Equal(t, `[""]`, FormatList([]string{""}))
	assert.Equal(t, `["<a href='x'>L1</a>", "say \"hi\""]`, FormatList([]string{"<a href='x'>L1</a>", `say "hi"`}))
	assert.Equal(t, `["line\nbreak"]`, FormatList([]string{"line\nbreak"}))
}

func TestDebugRenderer(t *testing.T) {
	out, err := NewDebugRenderer().Render(result(core.OpTags))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(out))

	out, err = NewDebugRenderer().Render(result(core.OpContent, "Example", "Home"))
	require.NoError(t, err)
	assert.Equal(t, "[\"Example\", \"Home\"]\n", string(out))
}

func TestLinesRenderer(t *testing.T) {
	out, err := NewLinesRenderer().Render(result(core.OpAttributeValues, "https://go.dev", "https://example.com"))
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev\nhttps://example.com\n", string(out))
}

func TestJSONRenderer(t *testing.T) {
	value := "button"
	res := result(core.OpTagsWithAttribute, "<a class='button'>B</a>")
	res.Attribute = "class"
	res.Value = &value

	out, err := NewJSONRenderer().Render(res)
	require.NoError(t, err)

	var decoded core.Result
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, res, decoded)
}

func TestJSONRenderer_EmptyMatchesIsArray(t *testing.T) {
	out, err := NewJSONRenderer().Render(result(core.OpTags))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"matches": []`)
	assert.NotContains(t, string(out), `"attribute"`)
}

func TestTextRenderer(t *testing.T) {
	out, err := NewTextRenderer().Render(result(core.OpTags, "<a href='x'>Link &amp; more</a>", "<a>  spaced\n text </a>"))
	require.NoError(t, err)
	assert.Equal(t, "Link & more\nspaced text\n", string(out))

	out, err = NewTextRenderer().Render(result(core.OpAttributeValues, "a &amp; b"))
	require.NoError(t, err)
	assert.Equal(t, "a &amp; b\n", string(out))
}

func TestMarkdownRenderer(t *testing.T) {
	out, err := NewMarkdownRenderer().Render(result(core.OpTags, `<a href="https://go.dev">Go</a>`))
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "# <a> (tags)")
	assert.Contains(t, s, "Source: inline")
	assert.Contains(t, s, "## Match 1")
	assert.Contains(t, s, "[Go](https://go.dev)")

	out, err = NewMarkdownRenderer().Render(result(core.OpTags))
	require.NoError(t, err)
	assert.Contains(t, string(out), "No matches.")
}

func TestMarkdownRenderer_AttributeValuesVerbatim(t *testing.T) {
	res := result(core.OpAttributeValues, "https://go.dev/doc_index", "a &amp; b")
	res.Attribute = "href"
	out, err := NewMarkdownRenderer().Render(res)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "## Match 1\n\nhttps://go.dev/doc_index\n")
	assert.Contains(t, s, "## Match 2\n\na &amp; b\n")
}

func TestTitle(t *testing.T) {
	value := "nav-link"
	res := result(core.OpTagsWithAttribute)
	res.Attribute = "class"
	res.Value = &value
	assert.Equal(t, `<a> class="nav-link" (tags-with-attribute)`, title(res))
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer()
	out, err := r.Render(result(core.OpTags, "<a href='x'>Café</a>", "<a>second</a>"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, ".pdf", r.Extension())
	assert.True(t, IsBinary(r))
}

func TestNew(t *testing.T) {
	for _, name := range Formats() {
		r, err := New(name)
		require.NoError(t, err, name)
		assert.NotNil(t, r)
	}

	r, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &DebugRenderer{}, r)
	assert.False(t, IsBinary(r))

	_, err = New("yaml")
	assert.Error(t, err)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"debug", "json", "lines", "markdown", "pdf", "text"}, Formats())
}
