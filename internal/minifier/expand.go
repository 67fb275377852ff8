package minifier

import "strings"

var (
	bareFraction = compile(` (\.[0-9]+)`)

	layout = strings.NewReplacer(
		"{", " {\n\t",
		";", ";\n\t",
		"}", ";\n}\n\n",
		":", ": ",
	)
)

// Expand lays minified CSS out one declaration per line. It is a reading
// aid, mostly for diffing minifier output, and does not undo Minify.
func Expand(css string) string {
	css = lowercaseHexColors(css)
	css = layout.Replace(css)
	return replace(bareFraction, css, " 0$1")
}
