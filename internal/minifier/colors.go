package minifier

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/dlclark/regexp2"
)

var (
	// Not after a quote, "=" or whitespace: attribute values and
	// descendant ID selectors keep their case.
	mixedCaseHex = compile(`(?<=[^"'=` + spaceChars + `]#)[0-9a-fA-F]{3,6}`)
	rgbFunction  = compile(`rgb` + space + `*\(([0-9,` + spaceChars + `]+)\)`)
	longHex      = compile(`(?<=[^"'=]#)[0-9a-f]{6}(?![0-9a-fA-F])`)
)

// lowercaseHexColors lowercases the digits of #rgb and #rrggbb colors.
func lowercaseHexColors(css string) string {
	return replaceFunc(mixedCaseHex, css, func(m regexp2.Match) string {
		return strings.ToLower(m.String())
	})
}

// rgbToHex rewrites rgb(51, 102, 153) as #336699. A call that does not hold
// exactly three integer channels in 0-255 is left alone.
func rgbToHex(css string) string {
	return replaceFunc(rgbFunction, css, func(m regexp2.Match) string {
		channels := strings.Split(group(m, 1), ",")
		if len(channels) != 3 {
			return m.String()
		}

		hex := "#"
		for _, channel := range channels {
			n, err := strconv.Atoi(strings.Trim(channel, " \t\n\r\f\v"))
			if err != nil {
				return m.String()
			}
			v, err := safecast.Conv[uint8](n)
			if err != nil {
				return m.String()
			}
			hex += fmt.Sprintf("%02x", v)
		}
		return hex
	})
}

// condenseHexColors shortens #aabbcc to #abc.
func condenseHexColors(css string) string {
	return replaceFunc(longHex, css, func(m regexp2.Match) string {
		s := m.String()
		if s[0] == s[1] && s[2] == s[3] && s[4] == s[5] {
			return string([]byte{s[0], s[2], s[4]})
		}
		return s
	})
}
