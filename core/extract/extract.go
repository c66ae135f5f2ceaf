// Package extract finds HTML elements, attribute values and inner text in raw
// markup by pattern matching, without building a DOM.
//
// Matching is deliberately approximate: it is case-sensitive, does not decode
// entities, does not close tags implicitly and mispairs nested elements that
// share a name. All functions are pure; a Document may be shared between
// goroutines.
package extract

// Document is an immutable markup buffer.
type Document struct {
	src string
}

// NewDocument wraps markup for extraction.
func NewDocument(markup string) Document {
	return Document{src: markup}
}

// String returns the markup.
func (d Document) String() string {
	return d.src
}

// Len returns the markup length in bytes.
func (d Document) Len() int {
	return len(d.src)
}

// Tags returns every occurrence of tag in markup as verbatim source text.
func Tags(markup, tag string) []string {
	return Texts(NewDocument(markup).MatchTags(tag))
}

// TagsWithAttribute returns the occurrences of tag that satisfy q.
func TagsWithAttribute(markup, tag string, q AttrQuery) []string {
	return Texts(FilterByAttribute(NewDocument(markup).MatchTags(tag), q))
}

// TagText returns the inner text of every paired occurrence of tag.
func TagText(markup, tag string) []string {
	return NewDocument(markup).TagText(tag)
}

// AttributeValues returns the quoted value of attribute name for every
// occurrence of tag that carries it.
func AttributeValues(markup, tag, name string) []string {
	return NewDocument(markup).AttributeValues(tag, name)
}
