package extract

import "strings"

// Mode records which pass of the tag matcher produced an occurrence.
type Mode int

const (
	// Paired is an opening marker, its shortest inner span and the nearest
	// closing marker: <t ...>…</t>.
	Paired Mode = iota
	// SelfClosing is an opening marker written with a trailing slash: <t .../>.
	SelfClosing
	// BareOpening is an opening marker with no slash and no pairing, kept only
	// because some closing marker for the tag exists elsewhere in the document.
	// It approximates HTML5 void elements and is not a structural guarantee.
	BareOpening
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Paired:
		return "paired"
	case SelfClosing:
		return "self-closing"
	case BareOpening:
		return "bare-opening"
	default:
		return "unknown"
	}
}

// Occurrence is one matched tag instance. Text is always Document[Start:End].
type Occurrence struct {
	Text  string
	Start int
	End   int
	Mode  Mode
}

// MatchTags locates every occurrence of tag in the document. Paired matches
// come first, then self-closing ones, then bare openers.
//
// Nested elements with the same name are not handled: the outer opener is
// paired with the first closer found, which belongs to the inner element.
func (d Document) MatchTags(tag string) []Occurrence {
	p := patternsFor(tag)
	if p == nil || d.src == "" {
		return []Occurrence{}
	}

	result := d.pairedPass(p)
	result = append(result, d.selfClosingPass(p, result)...)
	return d.bareOpeningPass(p, result)
}

// pairedPass scans left to right for non-overlapping lazy paired matches.
func (d Document) pairedPass(p *tagPatterns) []Occurrence {
	locs := p.paired.FindAllStringIndex(d.src, -1)
	out := make([]Occurrence, 0, len(locs))
	for _, loc := range locs {
		out = append(out, d.occurrence(loc[0], loc[1], Paired))
	}
	return out
}

// selfClosingPass returns slash-terminated tags that do not lie inside a
// paired match.
func (d Document) selfClosingPass(p *tagPatterns, paired []Occurrence) []Occurrence {
	var out []Occurrence
	for _, loc := range p.selfClosing.FindAllStringIndex(d.src, -1) {
		if within(paired, loc[0], loc[1]) {
			continue
		}
		out = append(out, d.occurrence(loc[0], loc[1], SelfClosing))
	}
	return out
}

// bareOpeningPass appends opening markers not already covered by result,
// provided the document contains at least one closing marker for the tag.
// A closing marker must end the name: "</a>" or "</a x>" count, "</abbr>"
// does not, so a document whose only closer is "</abbr>" yields no bare <a>.
func (d Document) bareOpeningPass(p *tagPatterns, result []Occurrence) []Occurrence {
	if !p.closing.MatchString(d.src) {
		return result
	}
	for _, loc := range p.opening.FindAllStringIndex(d.src, -1) {
		text := d.src[loc[0]:loc[1]]
		if containedIn(result, text) {
			continue
		}
		result = append(result, d.occurrence(loc[0], loc[1], BareOpening))
	}
	return result
}

func (d Document) occurrence(start, end int, mode Mode) Occurrence {
	return Occurrence{Text: d.src[start:end], Start: start, End: end, Mode: mode}
}

// within reports whether the span [start, end) lies inside any occurrence.
func within(occs []Occurrence, start, end int) bool {
	for _, o := range occs {
		if start >= o.Start && end <= o.End {
			return true
		}
	}
	return false
}

// containedIn reports whether text is a substring of any occurrence.
func containedIn(occs []Occurrence, text string) bool {
	for _, o := range occs {
		if strings.Contains(o.Text, text) {
			return true
		}
	}
	return false
}

// Texts returns the source text of each occurrence, in order.
func Texts(occs []Occurrence) []string {
	out := make([]string, 0, len(occs))
	for _, o := range occs {
		out = append(out, o.Text)
	}
	return out
}
