package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Out receives every message. Stdout is reserved for stylesheet output.
var Out io.Writer = os.Stderr

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#3B82F6") // Blue
	Success   = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5E7EB"))

	AddedStyle   = lipgloss.NewStyle().Foreground(Success)
	RemovedStyle = lipgloss.NewStyle().Foreground(Error)
)

// Banner returns the cssmin banner
func Banner() string {
	banner := `
 █▀▀ █▀▀ █▀▀ █▀▄▀█ ▀█▀ █▄ █
 █   ▀▀█ ▀▀█ █ ▀ █  █  █ ▀█
 ▀▀▀ ▀▀▀ ▀▀▀ ▀   ▀ ▀▀▀ ▀  ▀`
	return TitleStyle.Render(banner)
}

// Header returns a section header
func Header(text string) string {
	return TitleStyle.Render("▸ " + text)
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	fmt.Fprintln(Out, SuccessStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	fmt.Fprintln(Out, InfoStyle.Render("• "+fmt.Sprintf(format, args...)))
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	fmt.Fprintln(Out, ErrorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	fmt.Fprintln(Out, WarningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// PrintKeyValue prints a key-value pair
func PrintKeyValue(key, value string) {
	fmt.Fprintf(Out, "  %s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// PrintDiffLine prints one line of a unified diff, colored by its marker
func PrintDiffLine(line string) {
	switch {
	case len(line) > 0 && line[0] == '+':
		fmt.Fprintln(Out, AddedStyle.Render(line))
	case len(line) > 0 && line[0] == '-':
		fmt.Fprintln(Out, RemovedStyle.Render(line))
	default:
		fmt.Fprintln(Out, line)
	}
}

// Divider returns a divider line
func Divider() string {
	return MutedStyle.Render("─────────────────────────────────────────")
}

// VersionLine returns the styled version line shown under the banner
func VersionLine(version string) string {
	return ValueStyle.Render(" Version: " + version)
}

// PrintVersion prints the version
func PrintVersion(version string) {
	fmt.Fprintln(Out, VersionLine(version))
}

// PrintHeader prints the standard header
func PrintHeader(version string) {
	fmt.Fprintln(Out)
	fmt.Fprintln(Out, Divider())
	fmt.Fprintln(Out, Banner())
	PrintVersion(version)
	fmt.Fprintln(Out)
	fmt.Fprintln(Out, Divider())
	fmt.Fprintln(Out)
}

// FormatSize renders a byte count the way build summaries print it
func FormatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
