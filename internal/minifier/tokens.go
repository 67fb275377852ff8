package minifier

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// Placeholder namespaces. Each placeholder is wrapped in NUL bytes, which
// never occur in a stylesheet, so it cannot collide with real content.
const (
	commentTag   = "COMMENT_TOKEN"
	preservedTag = "PRESERVED_TOKEN"

	pseudoClassColon = "\x00_PSEUDOCLASSCOLON_\x00"
	boxModelHack     = "\x00_PSEUDOCLASSBMH_\x00"
)

func placeholder(tag string, index int) string {
	return "\x00_" + tag + "_" + strconv.Itoa(index) + "_\x00"
}

// Tokens is the side table threaded through the protecting stages.
// Comments holds every /*...*/ block in extraction order; Preserved holds
// the spans that must come back verbatim, indexed by their placeholder.
// Preserved only grows, so an index never changes once handed out.
type Tokens struct {
	Comments  []string
	Preserved []string
}

// preserve records s and returns the placeholder standing in for it.
func (t *Tokens) preserve(s string) string {
	t.Preserved = append(t.Preserved, s)
	return placeholder(preservedTag, len(t.Preserved)-1)
}

// extractComments replaces each comment block with a comment placeholder.
// An unterminated comment truncates the stylesheet where it starts.
func extractComments(css string) (string, []string) {
	var b strings.Builder
	b.Grow(len(css))
	var comments []string

	for {
		start := strings.Index(css, "/*")
		if start < 0 {
			b.WriteString(css)
			break
		}
		end := strings.Index(css[start+2:], "*/")
		if end < 0 {
			b.WriteString(css[:start])
			break
		}
		end += start + 4

		comments = append(comments, css[start:end])
		b.WriteString(css[:start])
		b.WriteString(placeholder(commentTag, len(comments)-1))
		css = css[end:]
	}

	return b.String(), comments
}

var quotedString = compile(`("([^\\"]|\\.|\\)*")|('([^\\']|\\.|\\)*')`)

// preserveStrings swaps the body of every quoted string for a preserved
// placeholder, keeping the quotes. Comment placeholders inside a string are
// turned back into the comment text: they were never comments.
func preserveStrings(css string, t *Tokens) string {
	return replaceFunc(quotedString, css, func(m regexp2.Match) string {
		literal := m.String()
		quote := literal[:1]
		body := rewritePlaceholders(literal[1:len(literal)-1], commentTag, func(i int, _ byte) (string, bool) {
			if i < len(t.Comments) {
				return t.Comments[i], true
			}
			return "", false
		})
		return quote + t.preserve(body) + quote
	})
}

// rewritePlaceholders replaces every placeholder of the given tag in a
// single left-to-right pass. fn gets the placeholder index and the last byte
// written before it (0 at the start of the output); returning false keeps
// the placeholder as it is.
func rewritePlaceholders(css, tag string, fn func(index int, prev byte) (string, bool)) string {
	prefix := "\x00_" + tag + "_"
	if !strings.Contains(css, prefix) {
		return css
	}

	var b strings.Builder
	b.Grow(len(css))
	var prev byte

	for {
		at := strings.Index(css, prefix)
		if at < 0 {
			break
		}
		digits := at + len(prefix)
		end := strings.Index(css[digits:], "_\x00")
		if end < 0 {
			break
		}
		next := digits + end + 2

		b.WriteString(css[:at])
		if at > 0 {
			prev = css[at-1]
		}

		repl, ok := "", false
		if index, err := strconv.Atoi(css[digits : digits+end]); err == nil {
			repl, ok = fn(index, prev)
		}
		if !ok {
			repl = css[at:next]
		}
		b.WriteString(repl)
		if repl != "" {
			prev = repl[len(repl)-1]
		}
		css = css[next:]
	}

	b.WriteString(css)
	return b.String()
}
