package discovery

import (
	"log/slog"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docsync/internal/docmodel"
	"git.home.luguber.info/inful/docsync/internal/logfields"
)

// GlobToRegexp translates the restricted glob syntax used for classification
// into a regular expression anchored at the end of the path:
//
//	.  and /   literal
//	*          one or more characters other than '/'
//	?          exactly one character
//	{a,b,c}    alternation (a|b|c)
//
// There is no `**` and no character classes; every other character is
// matched literally.
func GlobToRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	depth := 0
	for _, r := range pattern {
		switch r {
		case '.':
			b.WriteString(`\.`)
		case '/':
			b.WriteString(`\/`)
		case '*':
			b.WriteString(`[^/]+`)
		case '?':
			b.WriteString(`.`)
		case '{':
			depth++
			b.WriteString(`(`)
		case '}':
			if depth > 0 {
				depth--
				b.WriteString(`)`)
			} else {
				b.WriteString(`\}`)
			}
		case ',':
			if depth > 0 {
				b.WriteString(`|`)
			} else {
				b.WriteString(`,`)
			}
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`$`)
	return regexp.Compile(b.String())
}

type compiledPattern struct {
	pattern docmodel.PathPattern
	re      *regexp.Regexp
}

// Matcher classifies paths against an ordered pattern list; the first
// matching pattern wins.
type Matcher struct {
	compiled []compiledPattern
}

// NewMatcher compiles patterns once. A pattern that does not translate to a
// valid expression is logged and never matches.
func NewMatcher(patterns []docmodel.PathPattern) *Matcher {
	m := &Matcher{compiled: make([]compiledPattern, 0, len(patterns))}
	for _, p := range patterns {
		re, err := GlobToRegexp(p.Pattern)
		if err != nil {
			slog.Warn("Pattern cannot be used for classification", logfields.Pattern(p.Pattern), logfields.Error(err))
			continue
		}
		m.compiled = append(m.compiled, compiledPattern{pattern: p, re: re})
	}
	return m
}

// FileType returns the type of the first pattern accepting path, or false.
func (m *Matcher) FileType(path string) (docmodel.DocumentationType, bool) {
	normalized := strings.ReplaceAll(path, `\`, "/")
	for _, c := range m.compiled {
		if c.re.MatchString(normalized) {
			return c.pattern.Type, true
		}
	}
	return "", false
}

// GetFileType classifies path against patterns without caching the
// compiled expressions.
func GetFileType(path string, patterns []docmodel.PathPattern) (docmodel.DocumentationType, bool) {
	return NewMatcher(patterns).FileType(path)
}
