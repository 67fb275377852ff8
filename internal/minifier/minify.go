// Package minifier shrinks CSS without changing what it renders, and can
// lay minified CSS back out for reading.
//
// Minification is a fixed sequence of text rewrites. Comments and quoted
// strings are first swapped for NUL-delimited placeholders so that no
// rewrite can touch them, and are put back at the end. The rewrites do not
// commute: the order in Minify is part of the contract.
package minifier

import "strings"

// Options controls Minify.
type Options struct {
	// Wrap breaks the output after the first "}" once a line reaches Wrap
	// bytes. Zero or less disables wrapping.
	Wrap int
}

// Minify returns the minified form of css. It accepts any input and never
// fails; malformed CSS gives unspecified but well-formed text.
func Minify(css string, opts Options) string {
	// Step 1: Pull out comments and strings
	css, comments := extractComments(css)
	tokens := &Tokens{Comments: comments}
	css = preserveStrings(css, tokens)
	css = processComments(css, tokens)

	// Step 2: Whitespace
	css = condenseWhitespace(css)
	css = protectBoxModelHack(css)
	css = removeUnnecessaryWhitespace(css)
	css = removeUnnecessarySemicolons(css)

	// Step 3: Colors
	css = lowercaseHexColors(css)
	css = rgbToHex(css)
	css = condenseHexColors(css)

	// Step 4: Values
	css = condenseZeroUnits(css)
	css = condenseMultidimensionalZeros(css)
	css = condenseFloatingPoints(css)
	css = condenseNone(css)

	// Step 5: Rules
	css = wrapLines(css, opts.Wrap)
	css = condenseSemicolons(css)
	css = removeEmptyRules(css)

	// Step 6: Put everything back
	css = restore(css, tokens)
	css = condenseIEOpacityFilter(css)

	return strings.TrimSpace(css)
}

// MinifyBytes is Minify for file contents.
func MinifyBytes(src []byte, opts Options) []byte {
	return []byte(Minify(string(src), opts))
}
