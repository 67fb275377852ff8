package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cssmin/internal/minifier"
	"cssmin/internal/ui"
	"cssmin/internal/version"
)

// Version is set by ldflags during build
var Version = "dev"

var (
	wrapWidth  int
	expandMode bool
)

var rootCmd = &cobra.Command{
	Use:   "cssmin",
	Short: "CSS minifier",
	Example: `  cssmin < site.css > site.min.css
  cssmin --wrap 500 < site.css
  cssmin --expand < site.min.css`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// Nothing piped in: show usage instead of waiting on the terminal
		if isTerminal(os.Stdin) {
			cmd.Help()
			return
		}

		if err := filter(os.Stdin, os.Stdout, minifier.Options{Wrap: wrapWidth}, expandMode); err != nil {
			ui.PrintError("%v", err)
			os.Exit(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("%v", err)
		os.Exit(1)
	}
}

func init() {
	Version = version.Resolve(Version)

	rootCmd.Long = ui.Divider() + "\n" + ui.Banner() + "\n" + ui.VersionLine(Version) + "\n\n" + ui.Divider() +
		"\n\n  Reads a stylesheet on stdin and writes it minified to stdout"
	rootCmd.SilenceErrors = true
	rootCmd.Flags().IntVarP(&wrapWidth, "wrap", "w", 0, "Break lines after a rule once they reach this many bytes (0 = never)")
	rootCmd.Flags().BoolVarP(&expandMode, "expand", "e", false, "Lay minified CSS out for reading instead of minifying")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cssmin %s\n", Version)
	},
}

// filter reads all of r and writes its minified (or expanded) form to w
// verbatim, without adding a trailing newline
func filter(r io.Reader, w io.Writer, opts minifier.Options, expand bool) error {
	if opts.Wrap < 0 {
		return fmt.Errorf("wrap must not be negative: %d", opts.Wrap)
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var out string
	if expand {
		out = minifier.Expand(string(src))
	} else {
		out = minifier.Minify(string(src), opts)
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
