package taxonomy

import (
	"strings"

	"github.com/dtnitsch/policy-engagement/models"
)

// tokenDelimiters separate codes in a multi-tag field such as "A1,B2".
const tokenDelimiters = ",;|/ \t"

// Matcher decides whether a record's tag field refers to a taxonomy code.
type Matcher interface {
	Match(tagField, code string) bool
}

// NewMatcher returns the matcher for a mode.
func NewMatcher(mode models.MatchMode) Matcher {
	if mode == models.MatchSubstring {
		return substringMatcher{}
	}
	return tokenMatcher{}
}

// substringMatcher reports a match when the code appears anywhere in the field.
// "A1" therefore also matches "A10".
type substringMatcher struct{}

func (substringMatcher) Match(tagField, code string) bool {
	return strings.Contains(tagField, code)
}

type tokenMatcher struct{}

func (tokenMatcher) Match(tagField, code string) bool {
	for _, tok := range Tokens(tagField) {
		if tok == code {
			return true
		}
	}
	return false
}

// Tokens splits a tag field into trimmed, non-empty codes.
func Tokens(tagField string) []string {
	return strings.FieldsFunc(tagField, func(r rune) bool {
		return strings.ContainsRune(tokenDelimiters, r)
	})
}

// Overlap is a pair of codes where Code matches inside Within under a matcher.
type Overlap struct {
	Code   string
	Within string
}

// Overlaps returns every ordered pair of distinct taxonomy codes where the
// matcher would attribute a record tagged only with Within to Code as well.
func Overlaps(t models.Taxonomy, m Matcher) []Overlap {
	var out []Overlap
	for _, a := range t.Tags {
		for _, b := range t.Tags {
			if a.Code == b.Code {
				continue
			}
			if m.Match(b.Code, a.Code) {
				out = append(out, Overlap{Code: a.Code, Within: b.Code})
			}
		}
	}
	return out
}
