package minifier

import (
	"strings"
	"testing"
)

var minifyTests = []struct {
	name     string
	input    string
	expected string
}{
	{"comment removed", "a { color: red; /* drop me */ }", "a{color:red}"},
	{"zero units collapse", "a{margin: 0px 0em 0% 0;}", "a{margin:0}"},
	{"background position keeps two zeros", "a{background-position:0;color:red}", "a{background-position:0 0;color:red}"},
	{"hex shortened", "a{color:#AABBCC}", "a{color:#abc}"},
	{"hex with unequal pairs", "a{color:#AABBCD}", "a{color:#aabbcd}"},
	{"rgb converted and shortened", "a{color: rgb(51, 102, 153);}", "a{color:#369}"},
	{"malformed rgb left alone", "a{color:rgb(300,0,0)}", "a{color:rgb(300,0,0)}"},
	{"empty rule removed", "a.unused {   }", ""},
	{"empty rule after bang comment", "/*! c */ a.unused{}", "/*! c */"},
	{"empty rule with quoted selector", "a[title='x']{} b{color:red}", "b{color:red}"},
	{"ie7 child hack", "html >/**/ body{color:red}", "html>/**/body{color:red}"},
	{"bang comment kept", "/*! keep me */ a{color:red}", "/*! keep me */a{color:red}"},
	{"ie mac hack", "/* hide \\*/ a{color:red} /* end */", "/*\\*/a{color:red}/**/"},
	{"string kept verbatim", `a{content:"{ ; }  x"}`, `a{content:"{ ; }  x"}`},
	{"comment inside string", `a{content:"/* x */"}`, `a{content:"/* x */"}`},
	{"pseudo class space kept", "p :link { color : red }", "p :link{color:red}"},
	{"first letter space kept", "p:first-letter { color: red }", "p:first-letter {color:red}"},
	{"charset hoisted", "a{color:red}\n@charset \"utf-8\";", "@charset \"utf-8\";a{color:red}"},
	{"media and", "@media screen and (max-width: 100px) { a { color: red } }", "@media screen and (max-width:100px){a{color:red}}"},
	{"border none", "a{border:none;}", "a{border:0}"},
	{"leading zero", "a{opacity:0.5}", "a{opacity:.5}"},
	{"repeated semicolons", "a{color:red;;;background:blue}", "a{color:red;background:blue}"},
	{"unterminated comment", "a{color:red} /* oops", "a{color:red}"},
	{
		"ie opacity filter",
		"pre{ -ms-filter: \"PROGID:DXImageTransform.Microsoft.Alpha(Opacity=80)\"; filter: PROGID:DXImageTransform.Microsoft.Alpha(Opacity=80); }",
		`pre{-ms-filter:"alpha(opacity=80)";filter:alpha(opacity=80)}`,
	},
	{"empty input", "", ""},
}

func TestMinify(t *testing.T) {
	for _, tt := range minifyTests {
		t.Run(tt.name, func(t *testing.T) {
			got := Minify(tt.input, Options{})
			if got != tt.expected {
				t.Errorf("Minify(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMinifyIdempotent(t *testing.T) {
	for _, tt := range minifyTests {
		t.Run(tt.name, func(t *testing.T) {
			once := Minify(tt.input, Options{})
			if twice := Minify(once, Options{}); twice != once {
				t.Errorf("Minify(Minify(%q)) = %q, want %q", tt.input, twice, once)
			}
		})
	}
}

func TestMinifyWrap(t *testing.T) {
	input := "a { color: red }\nb { color: blue }\nc { color: green }"

	got := Minify(input, Options{Wrap: 20})
	want := "a{color:red}b{color:blue}\nc{color:green}"
	if got != want {
		t.Errorf("Minify(wrap=20) = %q, want %q", got, want)
	}

	lines := strings.Split(got, "\n")
	for _, line := range lines[:len(lines)-1] {
		if !strings.HasSuffix(line, "}") {
			t.Errorf("line %q does not end a rule", line)
		}
	}

	if got := Minify(input, Options{}); strings.Contains(got, "\n") {
		t.Errorf("Minify without wrap = %q, want a single line", got)
	}
}

func TestMinifyBytes(t *testing.T) {
	got := MinifyBytes([]byte("a { color : #FFFFFF ; }"), Options{})
	if string(got) != "a{color:#fff}" {
		t.Errorf("MinifyBytes() = %q, want %q", got, "a{color:#fff}")
	}
}
