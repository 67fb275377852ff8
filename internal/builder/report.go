package builder

import (
	"fmt"
	"os"
	"path/filepath"

	"cssmin/internal/ui"
)

// Summary totals a set of build results
type Summary struct {
	Files     int
	Failed    int
	Cached    int
	InputSize int
	Saved     int
}

// Summarize totals results, skipping failed files in the size counts
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		s.Files++
		if r.Err != nil {
			s.Failed++
			continue
		}
		if r.Cached {
			s.Cached++
		}
		s.InputSize += r.InputSize
		s.Saved += r.Saved()
	}
	return s
}

// Percent returns the saved bytes as a share of the input
func (s Summary) Percent() float64 {
	if s.InputSize == 0 {
		return 0
	}
	return float64(s.Saved) * 100 / float64(s.InputSize)
}

// Report prints one line per file (unless quiet) and the totals
func Report(results []Result, quiet bool) Summary {
	for _, r := range results {
		switch {
		case r.Err != nil:
			ui.PrintError("%s: %v", r.Source, r.Err)
		case quiet:
		case r.Cached:
			ui.PrintInfo("%s → %s (cached)", r.Source, ui.FormatSize(r.OutputSize))
		default:
			ui.PrintInfo("%s → %s (-%s)", r.Source, ui.FormatSize(r.OutputSize), ui.FormatSize(r.Saved()))
		}
	}

	s := Summarize(results)
	ok := s.Files - s.Failed
	if !quiet {
		fmt.Fprintln(ui.Out)
		ui.PrintKeyValue("Files", fmt.Sprintf("%d (%d cached)", ok, s.Cached))
		ui.PrintKeyValue("Saved", fmt.Sprintf("%s (%.1f%%)", ui.FormatSize(s.Saved), s.Percent()))
	}
	if s.Failed == 0 {
		ui.PrintSuccess("Minified %d files", ok)
	}
	return s
}

// writeFile writes data to path, creating parent directories
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
