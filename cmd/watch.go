package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"cssmin/internal/builder"
	"cssmin/internal/config"
	"cssmin/internal/ui"
)

var (
	watchInterval time.Duration
	watchQuiet    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Rebuild whenever a stylesheet changes",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintHeader(Version)

		if watchInterval <= 0 {
			ui.PrintError("Interval must be positive: %v", watchInterval)
			os.Exit(1)
		}

		cfg, err := loadProject(cmd, args)
		if err != nil {
			ui.PrintError("%v", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := watch(ctx, cfg, watchInterval); err != nil {
			ui.PrintError("%v", err)
			os.Exit(1)
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 500*time.Millisecond, "How often to check for changes")
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Only report errors and the final result")
	rootCmd.AddCommand(watchCmd)
}

// watch builds once, then rebuilds whenever the watched set changes until
// ctx is cancelled. Editing the configuration file reloads it.
func watch(ctx context.Context, cfg *config.Config, interval time.Duration) error {
	b, err := newBuilder(cfg, watchQuiet)
	if err != nil {
		return err
	}

	last, err := snapshot(b)
	if err != nil {
		return err
	}
	rebuild(ctx, b)

	ui.PrintInfo("Watching for changes...")
	ui.PrintInfo("Press Ctrl+C to stop")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(ui.Out)
			ui.PrintInfo("Stopped watching")
			return nil
		case <-ticker.C:
		}

		current, err := snapshot(b)
		if err != nil {
			ui.PrintWarning("Failed to scan files: %v", err)
			continue
		}
		if !changed(last, current) {
			continue
		}

		if cfg.Path != "" && !current[cfg.Path].Equal(last[cfg.Path]) {
			reloaded, err := config.LoadFile(cfg.Path)
			if err != nil {
				ui.PrintWarning("Keeping previous configuration: %v", err)
			} else {
				cfg = reloaded
				b.Config = cfg
				ui.PrintInfo("Reloaded %s", filepath.Base(cfg.Path))
				if s, err := snapshot(b); err == nil {
					current = s
				}
			}
		}
		last = current

		fmt.Fprintln(ui.Out)
		ui.PrintInfo("Changes detected, rebuilding...")
		rebuild(ctx, b)
	}
}

func rebuild(ctx context.Context, b *builder.Builder) {
	s, err := runBuild(ctx, b)
	if err != nil {
		if ctx.Err() == nil {
			ui.PrintError("Build failed: %v", err)
		}
		return
	}
	if s.Failed > 0 {
		ui.PrintError("%d of %d files failed", s.Failed, s.Files)
	}
}

// snapshot records the modification time of every input and of the
// configuration file. Outputs carry the build suffix and are never inputs,
// so writing them does not trigger another build.
func snapshot(b *builder.Builder) (map[string]time.Time, error) {
	files, err := b.Files()
	if err != nil {
		return nil, err
	}

	mods := make(map[string]time.Time, len(files)+1)
	for _, rel := range files {
		info, err := os.Stat(filepath.Join(b.Config.Root, rel))
		if err != nil {
			continue
		}
		mods[rel] = info.ModTime()
	}
	if b.Config.Path != "" {
		if info, err := os.Stat(b.Config.Path); err == nil {
			mods[b.Config.Path] = info.ModTime()
		}
	}
	return mods, nil
}

// changed reports whether the two snapshots differ in files or times
func changed(before, after map[string]time.Time) bool {
	if len(before) != len(after) {
		return true
	}
	for path, mod := range after {
		prev, ok := before[path]
		if !ok || !prev.Equal(mod) {
			return true
		}
	}
	return false
}
