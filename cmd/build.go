package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cssmin/internal/builder"
	"cssmin/internal/cache"
	"cssmin/internal/config"
	"cssmin/internal/ui"
)

var (
	buildJobs       int
	buildWrap       int
	buildNoCache    bool
	buildClearCache bool
	buildQuiet      bool
)

var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Minify every stylesheet in a project",
	Long: `Minify the stylesheets selected by cssmin.toml (or cssmin.properties),
found by walking up from dir. Without a configuration file every *.css
below dir is minified next to its source as *.min.css.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !buildQuiet {
			ui.PrintHeader(Version)
		}

		cfg, err := loadProject(cmd, args)
		if err != nil {
			ui.PrintError("%v", err)
			os.Exit(1)
		}

		b, err := newBuilder(cfg, buildQuiet)
		if err != nil {
			ui.PrintError("%v", err)
			os.Exit(1)
		}

		s, err := runBuild(cmd.Context(), b)
		if err != nil {
			ui.PrintError("Build failed: %v", err)
			os.Exit(1)
		}
		if s.Failed > 0 {
			ui.PrintError("%d of %d files failed", s.Failed, s.Files)
			os.Exit(1)
		}
	},
}

func init() {
	buildCmd.Flags().IntVarP(&buildJobs, "jobs", "j", 0, "Files to minify in parallel (0 = one per CPU)")
	buildCmd.Flags().IntVarP(&buildWrap, "wrap", "w", 0, "Break lines after a rule once they reach this many bytes (0 = never)")
	buildCmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "Always minify, ignoring cached outputs")
	buildCmd.Flags().BoolVar(&buildClearCache, "clear-cache", false, "Drop all cached outputs before building")
	buildCmd.Flags().BoolVarP(&buildQuiet, "quiet", "q", false, "Only report errors and the final result")
	rootCmd.AddCommand(buildCmd)
}

// loadProject loads the configuration for the directory in args (default
// the working directory) and applies explicitly set flags over it
func loadProject(cmd *cobra.Command, args []string) (*config.Config, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if info, err := os.Stat(dir); err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("jobs") {
		cfg.Build.Jobs = buildJobs
	}
	if flags.Changed("wrap") {
		cfg.Minify.Wrap = buildWrap
	}
	if flags.Changed("no-cache") {
		enabled := !buildNoCache
		cfg.Build.Cache = &enabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newBuilder creates a Builder with the per-user cache attached when the
// configuration allows it. A cache that cannot be opened only disables caching.
func newBuilder(cfg *config.Config, quiet bool) (*builder.Builder, error) {
	b := builder.New(cfg)
	b.Quiet = quiet

	if !cfg.CacheEnabled() {
		return b, nil
	}
	c, err := cache.OpenDefault("cssmin")
	if err != nil {
		ui.PrintWarning("Cache disabled: %v", err)
		return b, nil
	}
	if buildClearCache {
		if err := c.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to clear cache: %w", err)
		}
	}
	b.Cache = c
	return b, nil
}

func runBuild(ctx context.Context, b *builder.Builder) (builder.Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !b.Quiet {
		source := b.Config.Path
		if source == "" {
			source = "defaults"
		}
		ui.PrintKeyValue("Root", b.Config.Root)
		ui.PrintKeyValue("Config", source)
		if b.Cache != nil {
			ui.PrintKeyValue("Cache", b.Cache.Dir())
		}
		fmt.Fprintln(ui.Out)
	}

	results, err := b.Build(ctx)
	if err != nil {
		return builder.Summary{}, err
	}
	if len(results) == 0 {
		ui.PrintWarning("No stylesheets matched %v", b.Config.Build.Include)
		return builder.Summary{}, nil
	}
	return builder.Report(results, b.Quiet), nil
}
