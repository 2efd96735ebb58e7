package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shulhi/inferno/config"
)

func TestLoadParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inferno.toml")
	contents := `
[prelude]
search_paths = ["./modules", "./vendor/modules"]

[lsp]
max_hover_versions_per_doc = 8

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Prelude.SearchPaths) != 2 || c.Prelude.SearchPaths[0] != "./modules" {
		t.Errorf("got %v", c.Prelude.SearchPaths)
	}
	if c.LSP.MaxHoverVersionsPerDoc != 8 {
		t.Errorf("got %d, want 8", c.LSP.MaxHoverVersionsPerDoc)
	}
	if c.Log.Level != "debug" {
		t.Errorf("got %q, want debug", c.Log.Level)
	}
	if c.Path() != path {
		t.Errorf("Path() = %q, want %q", c.Path(), path)
	}
}

func TestLoadDefaultsLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inferno.toml")
	if err := os.WriteFile(path, []byte("[prelude]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Log.Level != "info" {
		t.Errorf("got %q, want the default \"info\"", c.Log.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
