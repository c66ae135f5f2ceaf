package extract

// TagText returns the inner span of each paired occurrence of tag, verbatim.
// Nested markup is kept as raw text. An empty element contributes one empty
// string; self-closing and bare tags contribute nothing.
func (d Document) TagText(tag string) []string {
	p := patternsFor(tag)
	if p == nil {
		return []string{}
	}
	matches := p.paired.FindAllStringSubmatch(d.src, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}
