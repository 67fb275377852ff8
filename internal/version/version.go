package version

import (
	"fmt"
	"regexp"
	"runtime/debug"
	"strconv"
)

// Version represents a semantic version
type Version struct {
	Major   int
	Minor   int
	Patch   int
	Commits int    // Commits since the tag
	Hash    string // Abbreviated commit hash, if any
}

// String returns the version as a string
func (v *Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Commits > 0 {
		s += "-" + strconv.Itoa(v.Commits)
	}
	if v.Hash != "" {
		s += "+" + v.Hash
	}
	return s
}

// Format: v0.1.0 or v0.1.0-5-g1a2b3c4
var describeRe = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:-(\d+)-g([0-9a-f]+))?$`)

// Parse reads a tag in git describe form
func Parse(describe string) (*Version, error) {
	matches := describeRe.FindStringSubmatch(describe)
	if matches == nil {
		return nil, fmt.Errorf("invalid version %q", describe)
	}

	v := &Version{Hash: matches[5]}
	v.Major, _ = strconv.Atoi(matches[1])
	v.Minor, _ = strconv.Atoi(matches[2])
	v.Patch, _ = strconv.Atoi(matches[3])
	if matches[4] != "" {
		v.Commits, _ = strconv.Atoi(matches[4])
	}
	return v, nil
}

// Resolve returns the version to report. injected is the value set by
// -ldflags at build time; when it is missing or "dev" the module version
// recorded by go install is used instead.
func Resolve(injected string) string {
	if injected != "" && injected != "dev" {
		if v, err := Parse(injected); err == nil {
			return v.String()
		}
		return injected
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v, err := Parse(info.Main.Version); err == nil {
			return v.String()
		}
	}
	return "dev"
}
