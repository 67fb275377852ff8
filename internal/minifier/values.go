package minifier

import (
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	zeroUnits  = compile(`(?<=[` + spaceChars + `:])0(?:px|em|%|in|cm|mm|pc|pt|ex)`)
	multiZeros = compile(`(?<=:)(?:0` + space + `?){2,}(?=;|\})`)

	// Properties for which a lone 0 is invalid and "0 0" must be kept.
	positionZero = compileFold(`(background-position|transform-origin|webkit-transform-origin|` +
		`moz-transform-origin|o-transform-origin|ms-transform-origin):0(?=;|\})`)

	leadingZeros = compile(`(?<=:|` + space + `)0+(?=\.[0-9]+)`)

	noneValue = compileFold(`(border|border-top|border-left|border-bottom|border-right|outline|background)` +
		`:none(?=;|\})`)

	ieOpacity = compileFold(`progid:DXImageTransform\.Microsoft\.Alpha\(Opacity=`)
)

// condenseZeroUnits turns 0px, 0em, 0% and friends into 0.
func condenseZeroUnits(css string) string {
	return replace(zeroUnits, css, "0")
}

// condenseMultidimensionalZeros folds "0 0 0 0" into "0", then puts the
// second zero back for the properties that require two.
func condenseMultidimensionalZeros(css string) string {
	css = replace(multiZeros, css, "0")
	return replaceFunc(positionZero, css, func(m regexp2.Match) string {
		return strings.ToLower(group(m, 1)) + ":0 0"
	})
}

// condenseFloatingPoints turns 0.6 into .6.
func condenseFloatingPoints(css string) string {
	return replace(leadingZeros, css, "")
}

// condenseNone turns border:none (and outline, background) into border:0.
func condenseNone(css string) string {
	return replaceFunc(noneValue, css, func(m regexp2.Match) string {
		return strings.ToLower(group(m, 1)) + ":0"
	})
}

// condenseIEOpacityFilter shortens the verbose IE alpha filter.
func condenseIEOpacityFilter(css string) string {
	return replace(ieOpacity, css, "alpha(opacity=")
}
