package minifier

import (
	"time"

	"github.com/dlclark/regexp2"
)

// spaceChars is the ASCII whitespace set, written as regex escapes for use
// inside character classes. regexp2's \s also matches Unicode spaces such as
// U+00A0, which are not whitespace in CSS.
const (
	spaceChars = ` \t\n\r\f\v`
	space      = `[` + spaceChars + `]`
)

// matchTimeout bounds a single rewrite. A rewrite that times out leaves its
// input untouched.
const matchTimeout = 5 * time.Second

func compile(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.None)
	re.MatchTimeout = matchTimeout
	return re
}

func compileFold(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.IgnoreCase)
	re.MatchTimeout = matchTimeout
	return re
}

// replace substitutes every match of re in css. repl may reference groups as $1.
func replace(re *regexp2.Regexp, css, repl string) string {
	out, err := re.Replace(css, repl, -1, -1)
	if err != nil {
		return css
	}
	return out
}

// replaceFunc substitutes every match of re in css with the literal result of fn.
func replaceFunc(re *regexp2.Regexp, css string, fn func(m regexp2.Match) string) string {
	out, err := re.ReplaceFunc(css, fn, -1, -1)
	if err != nil {
		return css
	}
	return out
}

func group(m regexp2.Match, n int) string {
	if g := m.GroupByNumber(n); g != nil {
		return g.String()
	}
	return ""
}
