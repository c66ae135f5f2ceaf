package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// ErrInvalidName is returned by ValidateName for tag or attribute names that
// cannot occur in markup.
var ErrInvalidName = errors.New("invalid name")

// forbiddenNameChars can never be part of a tag or attribute name.
const forbiddenNameChars = "<>/=\"'"

// attrs is an optional run of attributes after the tag name: whitespace
// followed by anything up to the closing angle bracket.
const attrs = `(?:\s[^>]*)?`

// tagPatterns holds the compiled patterns for one tag name.
type tagPatterns struct {
	paired      *regexp.Regexp // <t ...>(inner)</t ...>, lazy, inner on one line
	selfClosing *regexp.Regexp // <t .../>
	opening     *regexp.Regexp // <t ...>
	closing     *regexp.Regexp // </t ...>
}

// patternCache maps a tag name to its *tagPatterns.
var patternCache sync.Map

// ValidateName reports whether name can be used as a tag or attribute name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, forbiddenNameChars) {
		return fmt.Errorf("%w: %q contains one of %s", ErrInvalidName, name, forbiddenNameChars)
	}
	if strings.IndexFunc(name, isSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidName, name)
	}
	return nil
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// literal escapes s so it matches itself when embedded in a pattern. Every
// caller-supplied name or value goes through here.
func literal(s string) string {
	return regexp.QuoteMeta(s)
}

// patternsFor returns the compiled patterns for tag, or nil when tag is not a
// valid name.
func patternsFor(tag string) *tagPatterns {
	if ValidateName(tag) != nil {
		return nil
	}
	if cached, ok := patternCache.Load(tag); ok {
		return cached.(*tagPatterns)
	}

	t := literal(tag)
	var p tagPatterns
	for _, c := range []struct {
		dst  **regexp.Regexp
		expr string
	}{
		{&p.paired, `<` + t + attrs + `>(.*?)</` + t + attrs + `>`},
		{&p.selfClosing, `<` + t + attrs + `/>`},
		{&p.opening, `<` + t + attrs + `>`},
		{&p.closing, `</` + t + attrs + `>`},
	} {
		re, err := regexp.Compile(c.expr)
		if err != nil {
			return nil
		}
		*c.dst = re
	}
	actual, _ := patternCache.LoadOrStore(tag, &p)
	return actual.(*tagPatterns)
}

// attrPattern matches name with a quoted value. When value is nil any value is
// accepted and captured in group 1 (double quotes) or group 2 (single quotes).
// It returns nil when name is not a valid name or value is not valid UTF-8;
// nil matches nothing.
func attrPattern(name string, value *string) *regexp.Regexp {
	if ValidateName(name) != nil {
		return nil
	}
	expr := `(?:^|\s)` + literal(name) + `=`
	if value == nil {
		expr += `(?:"([^"]*)"|'([^']*)')`
	} else {
		if !utf8.ValidString(*value) {
			return nil
		}
		v := literal(*value)
		expr += `(?:"` + v + `"|'` + v + `')`
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil
	}
	return re
}
