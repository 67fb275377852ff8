package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cssmin/internal/fixture"
	"cssmin/internal/minifier"
	"cssmin/internal/ui"
)

var (
	checkVerbose bool
	checkWrap    int
)

var checkCmd = &cobra.Command{
	Use:   "check <dir>",
	Short: "Compare the minifier against expected outputs",
	Long: `Minify every X.css in dir that has an X.css.min beside it and compare
the result with the .min file byte for byte. With -v, show a diff of the
first failure instead of the pass/fail lists.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cases, err := fixture.Discover(args[0])
		if err != nil {
			ui.PrintError("Failed to read %s: %v", args[0], err)
			os.Exit(1)
		}
		if len(cases) == 0 {
			ui.PrintError("No fixtures found in %s", args[0])
			os.Exit(1)
		}

		opts := minifier.Options{Wrap: checkWrap}
		result, err := fixture.Run(cases, opts)
		if err != nil {
			ui.PrintError("%v", err)
			os.Exit(1)
		}

		index := make(map[string]int, len(cases))
		for i, c := range cases {
			index[c.Input] = i
		}

		if checkVerbose && len(result.Failed) > 0 {
			if err := printFirstFailure(result.Failed[0], index, opts); err != nil {
				ui.PrintError("%v", err)
			}
		} else {
			printCases("Passed", result.Passed, index)
			fmt.Fprintln(ui.Out)
			printCases("Failed", result.Failed, index)
		}

		if !result.OK() {
			os.Exit(1)
		}
		ui.PrintSuccess("All %d fixtures passed", len(cases))
	},
}

func init() {
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Show a diff of the first failure")
	checkCmd.Flags().IntVarP(&checkWrap, "wrap", "w", 0, "Wrap width to minify with")
	rootCmd.AddCommand(checkCmd)
}

func printCases(title string, cases []fixture.Case, index map[string]int) {
	fmt.Fprintln(ui.Out, ui.Header(fmt.Sprintf("%s: %d", title, len(cases))))
	for _, c := range cases {
		fmt.Fprintf(ui.Out, "  %2d: %s\n", index[c.Input], c.Input)
	}
}

func printFirstFailure(c fixture.Case, index map[string]int, opts minifier.Options) error {
	title := fmt.Sprintf("FIRST FAILURE: %2d %s", index[c.Input], c.Input)
	fmt.Fprintln(ui.Out, ui.Header(title))

	expected, actual, err := c.Outputs(opts)
	if err != nil {
		return err
	}
	diff, err := fixture.Diff(expected, actual)
	if err != nil {
		return fmt.Errorf("failed to diff %s: %w", c.Name, err)
	}
	for _, line := range strings.Split(diff, "\n") {
		ui.PrintDiffLine(line)
	}
	return nil
}
