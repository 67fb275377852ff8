package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cssmin/internal/cache"
	"cssmin/internal/config"
	"cssmin/internal/minifier"
	"cssmin/internal/ui"
)

// Result describes what happened to one stylesheet
type Result struct {
	Source     string // Path relative to the project root
	Target     string // Path of the minified file
	InputSize  int
	OutputSize int
	Cached     bool // Output came from the cache
	Err        error
}

// Saved returns the number of bytes minification removed
func (r Result) Saved() int {
	return r.InputSize - r.OutputSize
}

// Builder minifies every stylesheet a project configuration selects
type Builder struct {
	Config *config.Config
	Cache  *cache.DiskCache // nil disables caching
	Quiet  bool
}

// New creates a Builder for cfg without a cache
func New(cfg *config.Config) *Builder {
	return &Builder{Config: cfg}
}

// Files returns the stylesheets to minify, relative to the project root.
// Files that already carry the output suffix are skipped so a build never
// minifies its own output.
func (b *Builder) Files() ([]string, error) {
	expanded, err := ExpandIncludes(b.Config.Root, b.Config.Build.Include, b.Config.Build.Exclude)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, path := range expanded {
		if !strings.HasSuffix(path, ".css") || strings.HasSuffix(path, b.Config.Build.Suffix) {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// TargetPath returns where the minified form of rel is written
func (b *Builder) TargetPath(rel string) string {
	name := strings.TrimSuffix(rel, ".css") + b.Config.Build.Suffix
	if b.Config.Build.OutDir == "" {
		return filepath.Join(b.Config.Root, name)
	}
	outDir := b.Config.Build.OutDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(b.Config.Root, outDir)
	}
	return filepath.Join(outDir, name)
}

// Build minifies every selected file in parallel. A file that fails is
// reported in its Result and does not stop the others; only cancellation
// of ctx aborts the build.
func (b *Builder) Build(ctx context.Context) ([]Result, error) {
	files, err := b.Files()
	if err != nil {
		return nil, fmt.Errorf("failed to expand include patterns: %w", err)
	}

	results := make([]Result, len(files))
	if len(files) == 0 {
		return results, nil
	}

	jobs := b.Config.Build.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, rel := range files {
		i, rel := i, rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = b.minifyFile(rel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (b *Builder) minifyFile(rel string) Result {
	res := Result{Source: rel, Target: b.TargetPath(rel)}

	src, err := os.ReadFile(filepath.Join(b.Config.Root, rel))
	if err != nil {
		res.Err = fmt.Errorf("failed to read %s: %w", rel, err)
		return res
	}
	res.InputSize = len(src)

	wrap := b.Config.Minify.Wrap
	key := cache.NewKey(src, wrap)

	var out []byte
	if entry, ok, err := b.Cache.Get(key); err != nil {
		ui.PrintWarning("Ignoring cache entry for %s: %v", rel, err)
	} else if ok {
		out = entry.Output
		res.Cached = true
	}

	if !res.Cached {
		out = minifier.MinifyBytes(src, minifier.Options{Wrap: wrap})
		entry := &cache.Entry{
			Wrap:      wrap,
			InputSize: len(src),
			Output:    out,
			CreatedAt: time.Now(),
		}
		if err := b.Cache.Put(key, entry); err != nil {
			ui.PrintWarning("Failed to cache %s: %v", rel, err)
		}
	}

	res.OutputSize = len(out)
	if err := writeFile(res.Target, out); err != nil {
		res.Err = fmt.Errorf("failed to write %s: %w", res.Target, err)
	}
	return res
}
