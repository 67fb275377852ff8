package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadToml(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, TomlFile), `
[minify]
wrap = 80

[build]
include = ["css/**/*.css"]
exclude = ["css/vendor/**"]
out-dir = "dist"
jobs = 2
cache = false
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Minify.Wrap != 80 {
		t.Errorf("Wrap = %d, want 80", cfg.Minify.Wrap)
	}
	if !reflect.DeepEqual(cfg.Build.Include, []string{"css/**/*.css"}) {
		t.Errorf("Include = %v", cfg.Build.Include)
	}
	if !reflect.DeepEqual(cfg.Build.Exclude, []string{"css/vendor/**"}) {
		t.Errorf("Exclude = %v", cfg.Build.Exclude)
	}
	if cfg.Build.OutDir != "dist" {
		t.Errorf("OutDir = %q, want %q", cfg.Build.OutDir, "dist")
	}
	if cfg.Build.Jobs != 2 {
		t.Errorf("Jobs = %d, want 2", cfg.Build.Jobs)
	}
	if cfg.CacheEnabled() {
		t.Error("CacheEnabled() = true, want false")
	}
	if cfg.Build.Suffix != DefaultSuffix {
		t.Errorf("Suffix = %q, want default %q", cfg.Build.Suffix, DefaultSuffix)
	}
	if cfg.Root != dir {
		t.Errorf("Root = %q, want %q", cfg.Root, dir)
	}
}

func TestLoadProperties(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, PropertiesFile), `# cssmin settings
wrap = 100
include = a.css, b/*.css
suffix = -min.css
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Minify.Wrap != 100 {
		t.Errorf("Wrap = %d, want 100", cfg.Minify.Wrap)
	}
	if !reflect.DeepEqual(cfg.Build.Include, []string{"a.css", "b/*.css"}) {
		t.Errorf("Include = %v", cfg.Build.Include)
	}
	if cfg.Build.Suffix != "-min.css" {
		t.Errorf("Suffix = %q, want %q", cfg.Build.Suffix, "-min.css")
	}
	if !cfg.CacheEnabled() {
		t.Error("CacheEnabled() = false, want true by default")
	}
}

func TestTomlPreferredOverProperties(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, TomlFile), "[minify]\nwrap = 1\n")
	writeFile(t, filepath.Join(dir, PropertiesFile), "wrap=2\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Minify.Wrap != 1 {
		t.Errorf("Wrap = %d, want 1 from %s", cfg.Minify.Wrap, TomlFile)
	}
}

func TestFindWalksUp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, TomlFile), "")
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find(%q) = %q, %v, %v", nested, path, ok, err)
	}
	if path != filepath.Join(dir, TomlFile) {
		t.Errorf("Find = %q, want %q", path, filepath.Join(dir, TomlFile))
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	// Guard against a config file somewhere above the temp dir.
	if _, ok, _ := Find(dir); ok {
		t.Skip("a cssmin config exists above the temp directory")
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}
	if !reflect.DeepEqual(cfg.Build.Include, []string{"**/*.css"}) {
		t.Errorf("Include = %v", cfg.Build.Include)
	}
	if cfg.Build.Suffix != DefaultSuffix || !cfg.CacheEnabled() {
		t.Errorf("defaults not applied: %+v", cfg.Build)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"negative wrap", func(c *Config) { c.Minify.Wrap = -1 }, true},
		{"negative jobs", func(c *Config) { c.Build.Jobs = -2 }, true},
		{"suffix would overwrite sources", func(c *Config) { c.Build.Suffix = ".css" }, true},
		{"suffix not css", func(c *Config) { c.Build.Suffix = ".min" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("/tmp")
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, PropertiesFile), "wrap=wide\n")

	if _, err := Load(dir); err == nil {
		t.Error("Load with a non-numeric wrap returned nil error")
	}
}
