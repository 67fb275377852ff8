package builder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cssmin/internal/cache"
	"cssmin/internal/config"
)

func newProject(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := makeTree(t, map[string]string{
		"site.css":             "a {\n  color: red;\n}\n",
		"site.min.css":         "stale",
		"sub/extra.css":        "/* c */\nb { margin: 0px 0px; }",
		"node_modules/x/x.css": "c { color: blue }",
		"notes.txt":            "not css",
	})
	return config.Default(dir), dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}

func TestFiles(t *testing.T) {
	cfg, _ := newProject(t)
	files, err := New(cfg).Files()
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}

	expected := []string{"site.css", filepath.Join("sub", "extra.css")}
	if len(files) != len(expected) {
		t.Fatalf("Files() = %v, want %v", files, expected)
	}
	for i := range expected {
		if files[i] != expected[i] {
			t.Errorf("Files()[%d] = %q, want %q", i, files[i], expected[i])
		}
	}
}

func TestTargetPath(t *testing.T) {
	root := filepath.FromSlash("/project")
	tests := []struct {
		name     string
		outDir   string
		suffix   string
		rel      string
		expected string
	}{
		{"next to source", "", ".min.css", "site.css", "/project/site.min.css"},
		{"nested source", "", ".min.css", "sub/a.css", "/project/sub/a.min.css"},
		{"custom suffix", "", "-min.css", "site.css", "/project/site-min.css"},
		{"relative out dir", "dist", ".min.css", "sub/a.css", "/project/dist/sub/a.min.css"},
		{"absolute out dir", "/out", ".min.css", "a.css", "/out/a.min.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default(root)
			cfg.Build.OutDir = filepath.FromSlash(tt.outDir)
			cfg.Build.Suffix = tt.suffix
			got := New(cfg).TargetPath(filepath.FromSlash(tt.rel))
			if got != filepath.FromSlash(tt.expected) {
				t.Errorf("TargetPath(%q) = %q, want %q", tt.rel, got, tt.expected)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	cfg, dir := newProject(t)
	cfg.Build.Jobs = 2

	results, err := New(cfg).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Build() = %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: %v", r.Source, r.Err)
		}
		if r.Cached {
			t.Errorf("%s: cached without a cache", r.Source)
		}
	}

	if got := readFile(t, filepath.Join(dir, "site.min.css")); got != "a{color:red}" {
		t.Errorf("site.min.css = %q, want %q", got, "a{color:red}")
	}
	if got := readFile(t, filepath.Join(dir, "sub", "extra.min.css")); got != "b{margin:0}" {
		t.Errorf("extra.min.css = %q, want %q", got, "b{margin:0}")
	}
	if _, err := os.Stat(filepath.Join(dir, "node_modules", "x", "x.min.css")); err == nil {
		t.Error("excluded file was minified")
	}

	s := Summarize(results)
	if s.Files != 2 || s.Failed != 0 || s.Saved <= 0 {
		t.Errorf("Summarize() = %+v", s)
	}
}

func TestBuildOutDir(t *testing.T) {
	cfg, dir := newProject(t)
	cfg.Build.OutDir = "dist"

	if _, err := New(cfg).Build(context.Background()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "dist", "sub", "extra.min.css")); got != "b{margin:0}" {
		t.Errorf("dist/sub/extra.min.css = %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "site.min.css")); got != "stale" {
		t.Errorf("site.min.css was overwritten: %q", got)
	}
}

func TestBuildUsesCache(t *testing.T) {
	cfg, dir := newProject(t)
	c, err := cache.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	b := New(cfg)
	b.Cache = c

	first, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, r := range first {
		if r.Cached {
			t.Errorf("first build: %s cached", r.Source)
		}
	}

	os.Remove(filepath.Join(dir, "site.min.css"))
	second, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, r := range second {
		if !r.Cached {
			t.Errorf("second build: %s not cached", r.Source)
		}
	}
	if got := readFile(t, filepath.Join(dir, "site.min.css")); got != "a{color:red}" {
		t.Errorf("site.min.css from cache = %q", got)
	}
}

func TestBuildCancelled(t *testing.T) {
	cfg, _ := newProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(cfg).Build(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}

func TestBuildNoFiles(t *testing.T) {
	cfg := config.Default(t.TempDir())
	results, err := New(cfg).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Build() = %v, want no results", results)
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Source: "a.css", InputSize: 100, OutputSize: 60},
		{Source: "b.css", InputSize: 100, OutputSize: 40, Cached: true},
		{Source: "c.css", InputSize: 50, Err: errors.New("boom")},
	}
	s := Summarize(results)
	if s.Files != 3 || s.Failed != 1 || s.Cached != 1 {
		t.Errorf("Summarize() counts = %+v", s)
	}
	if s.InputSize != 200 || s.Saved != 100 {
		t.Errorf("Summarize() sizes = %+v", s)
	}
	if s.Percent() != 50 {
		t.Errorf("Percent() = %v, want 50", s.Percent())
	}
}
