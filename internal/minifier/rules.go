package minifier

import (
	"strings"
)

var (
	semicolonsBeforeBrace = compile(`;+\}`)
	repeatedSemicolons    = compile(`;+(?=;)`)

	// A selector followed by an empty body. The selector may not run
	// through a placeholder, except across the NUL bytes that sit directly
	// inside the quotes of a preserved string.
	emptyRule = compile(`([^\}\{;/\x00]|\x00(?=["'])|(?<=["'])\x00)+\{\}`)
)

// removeUnnecessarySemicolons drops the semicolons before a closing brace.
func removeUnnecessarySemicolons(css string) string {
	return replace(semicolonsBeforeBrace, css, "}")
}

// condenseSemicolons collapses ";;;" into ";".
func condenseSemicolons(css string) string {
	return replace(repeatedSemicolons, css, "")
}

// removeEmptyRules deletes rules with an empty body, repeating until none
// is left so that a block emptied this way goes too.
func removeEmptyRules(css string) string {
	for {
		next := replace(emptyRule, css, "")
		if next == css {
			return css
		}
		css = next
	}
}

// wrapLines breaks the sheet after the first "}" at or past width bytes
// since the last break. Lines are only ever broken between rules.
func wrapLines(css string, width int) string {
	if width <= 0 {
		return css
	}

	var lines []string
	start := 0
	for i := 0; i < len(css); i++ {
		if css[i] == '}' && i-start >= width {
			lines = append(lines, css[start:i+1])
			start = i + 1
		}
	}
	if start < len(css) {
		lines = append(lines, css[start:])
	}

	return strings.Join(lines, "\n")
}
