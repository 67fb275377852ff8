package minifier

import "strings"

// restore puts every preserved span and any leftover comment back in place
// of its placeholder, then undoes the Box Model Hack marker. Replacements
// are inserted literally, in one pass per namespace.
func restore(css string, t *Tokens) string {
	css = strings.ReplaceAll(css, boxModelHack, `"\"}\""`)

	css = rewritePlaceholders(css, preservedTag, func(i int, _ byte) (string, bool) {
		if i < len(t.Preserved) {
			return t.Preserved[i], true
		}
		return "", false
	})

	return rewritePlaceholders(css, commentTag, func(i int, _ byte) (string, bool) {
		if i < len(t.Comments) {
			return t.Comments[i], true
		}
		return "", false
	})
}
