package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cssmin/internal/config"
	"cssmin/internal/ui"
)

var initForce bool

const configTemplate = `# cssmin project configuration

[minify]
# Break output lines after a rule once they reach this many bytes (0 = never)
wrap = 0

[build]
# Stylesheets to minify, relative to this file (** matches any depth)
include = ["**/*.css"]

# Paths to skip
exclude = ["node_modules/**", ".git/**"]

# Minified files are written as <name>` + config.DefaultSuffix + `
suffix = "` + config.DefaultSuffix + `"

# Write minified files under this directory instead of next to the source
# out-dir = "dist"

# Files minified in parallel (0 = one per CPU)
jobs = 0

# Reuse earlier output for unchanged stylesheets
cache = true
`

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a cssmin.toml",
	Long:  "Write a commented default " + config.TomlFile + " to dir (default the current directory)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintHeader(Version)

		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		path, err := writeConfig(dir, initForce)
		if err != nil {
			ui.PrintError("%v", err)
			if errors.Is(err, os.ErrExist) {
				ui.PrintInfo("Use --force to overwrite it")
			}
			os.Exit(1)
		}

		ui.PrintSuccess("Created %s", path)
		fmt.Fprintln(ui.Out)
		ui.PrintInfo("Run 'cssmin build' to minify your stylesheets")
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing "+config.TomlFile)
	rootCmd.AddCommand(initCmd)
}

// writeConfig writes the default configuration into dir. An existing file
// is only replaced when force is set.
func writeConfig(dir string, force bool) (string, error) {
	path := filepath.Join(dir, config.TomlFile)

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s already exists: %w", path, err)
		}
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.WriteString(configTemplate); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, f.Close()
}
