package minifier

import (
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	whitespaceRun = compile(`(?<!\\)` + space + `+`)

	// A selector chain at the top level: everything between the start of
	// the sheet (or a closing brace) and the next opening brace that
	// contains a colon.
	selectorColons = compile(`(^|\})(([^\{\:])+\:)+([^\{]*\{)`)

	leadingSpace  = compile(`(?<!\\)` + space + `+(?=[!{};:>+\(\)\],/])`)
	trailingSpace = compile(`((?<!/\*)!|[/{}:;>+\(\[,\x00])` + space + `+`)

	firstLineOrLetter = compile(`:first-(line|letter)(\{|,)`)
	charsetRule       = compile(`@charset ` + space + `*(?:"[^"]*"|'[^']*');`)
	mediaAnd          = compile(`\band\(`)
)

// condenseWhitespace collapses every unescaped whitespace run to one space.
func condenseWhitespace(css string) string {
	return replace(whitespaceRun, css, " ")
}

// protectBoxModelHack hides the `"\"}\""` idiom from the brace rewrites.
func protectBoxModelHack(css string) string {
	return strings.ReplaceAll(css, `"\"}\""`, boxModelHack)
}

// removeUnnecessaryWhitespace drops whitespace around punctuation while
// keeping the few spaces that carry meaning: "p :link", ":first-line {",
// "and (".
func removeUnnecessaryWhitespace(css string) string {
	// Mark selector colons so "p :link" does not become "p:link".
	css = replaceFunc(selectorColons, css, func(m regexp2.Match) string {
		return strings.ReplaceAll(m.String(), ":", pseudoClassColon)
	})
	css = replace(leadingSpace, css, "")
	css = strings.ReplaceAll(css, pseudoClassColon, ":")

	// IE6 needs the space in ":first-line {" and ":first-letter {".
	css = replace(firstLineOrLetter, css, ":first-$1 $2")

	css = replace(trailingSpace, css, "$1")

	css = hoistCharset(css)

	// Media features need "and (".
	return replace(mediaAnd, css, "and (")
}

// hoistCharset keeps the first @charset rule, moved to the top of the
// sheet, and drops any others.
func hoistCharset(css string) string {
	var charset string
	css = replaceFunc(charsetRule, css, func(m regexp2.Match) string {
		if charset == "" {
			charset = m.String()
		}
		return ""
	})
	return charset + css
}
