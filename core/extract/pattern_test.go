package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	for _, name := range []string{"a", "h1", "data-test", "svg:rect", "a.b", "(", "my_tag"} {
		assert.NoError(t, ValidateName(name), "name %q", name)
	}
	for _, name := range []string{"", " ", "a b", "a\tb", "a>", "<a", "a/", "a=", `a"`, "a'", "a\xff", "\xc3"} {
		err := ValidateName(name)
		assert.Error(t, err, "name %q", name)
		assert.True(t, errors.Is(err, ErrInvalidName))
	}
}

func TestPatternsFor_Cached(t *testing.T) {
	first := patternsFor("span")
	second := patternsFor("span")
	assert.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Nil(t, patternsFor(""))
}

func TestAttrPattern_Escapes(t *testing.T) {
	v := "a+b"
	re := attrPattern("x.y", &v)
	assert.True(t, re.MatchString(`<t x.y="a+b">`))
	assert.False(t, re.MatchString(`<t xzy="a+b">`))
	assert.False(t, re.MatchString(`<t x.y="aab">`))
	assert.Nil(t, attrPattern("bad name", nil))
}

func TestAttrPattern_RequiresMatchingQuotes(t *testing.T) {
	re := attrPattern("href", nil)
	assert.True(t, re.MatchString(`<a href="x">`))
	assert.True(t, re.MatchString(`<a href='x'>`))
	assert.False(t, re.MatchString(`<a href=x>`))
	assert.False(t, re.MatchString(`<a href="x'>`))
}

func TestInvalidUTF8MatchesNothing(t *testing.T) {
	doc := `<a href="x">one</a><a href='y'>two</a>`

	assert.NotPanics(t, func() {
		assert.Empty(t, Tags(doc, "a\xff"))
		assert.Empty(t, TagText(doc, "a\xff"))
		assert.Empty(t, AttributeValues(doc, "a", "h\xff"))
		assert.Empty(t, TagsWithAttribute(doc, "a", Any("href\xff")))
		assert.Empty(t, TagsWithAttribute(doc, "a", Equals("href", "x\xff")))
	})

	v := "x\xff"
	assert.Nil(t, attrPattern("href", &v))
	assert.Nil(t, patternsFor("a\xff"))

	// Invalid bytes in the markup itself are fine.
	assert.Equal(t, []string{"<b>\xff</b>"}, Tags("<b>\xff</b>", "b"))
}
