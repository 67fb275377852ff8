// Package fixture checks the minifier against pairs of files: X.css holds
// the input and X.css.min the exact expected output.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"cssmin/internal/minifier"
)

// ExpectedExt is appended to an input's name to find its expected output
const ExpectedExt = ".min"

// Case is one input/expected pair
type Case struct {
	Name     string // Input file name without directory
	Input    string
	Expected string
}

// Result lists cases by outcome, each in discovery order
type Result struct {
	Passed []Case
	Failed []Case
}

// OK reports whether every case passed
func (r *Result) OK() bool {
	return len(r.Failed) == 0
}

// Discover returns every X.css in dir that has an X.css.min beside it,
// sorted by name
func Discover(dir string) ([]Case, error) {
	inputs, err := filepath.Glob(filepath.Join(dir, "*.css"))
	if err != nil {
		return nil, err
	}
	sort.Strings(inputs)

	var cases []Case
	for _, input := range inputs {
		expected := input + ExpectedExt
		if _, err := os.Stat(expected); err != nil {
			continue
		}
		cases = append(cases, Case{
			Name:     filepath.Base(input),
			Input:    input,
			Expected: expected,
		})
	}
	return cases, nil
}

// Outputs returns the expected output of c and what the minifier produces
func (c Case) Outputs(opts minifier.Options) (expected, actual string, err error) {
	src, err := os.ReadFile(c.Input)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", c.Input, err)
	}
	want, err := os.ReadFile(c.Expected)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", c.Expected, err)
	}
	return string(want), minifier.Minify(string(src), opts), nil
}

// Run minifies every case and compares the result with its expected output
// byte for byte
func Run(cases []Case, opts minifier.Options) (*Result, error) {
	result := &Result{}
	for _, c := range cases {
		expected, actual, err := c.Outputs(opts)
		if err != nil {
			return nil, err
		}
		if expected == actual {
			result.Passed = append(result.Passed, c)
		} else {
			result.Failed = append(result.Failed, c)
		}
	}
	return result, nil
}

// Diff renders a unified diff of the expanded forms of expected and actual.
// Minified CSS is usually one line, so expanding first makes the diff point
// at the declaration that differs. Equal inputs give an empty diff.
func Diff(expected, actual string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(minifier.Expand(expected)),
		B:        difflib.SplitLines(minifier.Expand(actual)),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(text, "\n"), nil
}
