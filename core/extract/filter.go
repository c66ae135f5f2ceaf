package extract

// AttrQuery selects occurrences by attribute. Build one with Any or Equals.
type AttrQuery struct {
	Name  string
	value *string
}

// Any matches occurrences carrying attribute name with any quoted value.
func Any(name string) AttrQuery {
	return AttrQuery{Name: name}
}

// Equals matches occurrences where attribute name has exactly value.
func Equals(name, value string) AttrQuery {
	return AttrQuery{Name: name, value: &value}
}

// Value returns the required value, if any.
func (q AttrQuery) Value() (string, bool) {
	if q.value == nil {
		return "", false
	}
	return *q.value, true
}

// FilterByAttribute keeps the occurrences whose source text satisfies q,
// preserving order. Unquoted attribute values never match.
func FilterByAttribute(occs []Occurrence, q AttrQuery) []Occurrence {
	out := make([]Occurrence, 0, len(occs))
	re := attrPattern(q.Name, q.value)
	if re == nil {
		return out
	}
	for _, o := range occs {
		if re.MatchString(o.Text) {
			out = append(out, o)
		}
	}
	return out
}
