package extract

// AttributeValues returns, for each occurrence of tag that carries attribute
// name with a quoted value, the first such value. Occurrences without it are
// skipped, so the result may be shorter than MatchTags.
func (d Document) AttributeValues(tag, name string) []string {
	re := attrPattern(name, nil)
	if re == nil {
		return []string{}
	}
	occs := d.MatchTags(tag)
	out := make([]string, 0, len(occs))
	for _, o := range occs {
		m := re.FindStringSubmatchIndex(o.Text)
		if m == nil {
			continue
		}
		switch {
		case m[2] >= 0:
			out = append(out, o.Text[m[2]:m[3]])
		case m[4] >= 0:
			out = append(out, o.Text[m[4]:m[5]])
		}
	}
	return out
}
