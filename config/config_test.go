package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[runtime]
max-depth = 500

[display]
width = 800
height = 600
max-frames = 60

[log]
verbose = true
`)

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if c.Runtime.MaxDepth != 500 {
		t.Errorf("MaxDepth = %d, want 500", c.Runtime.MaxDepth)
	}
	if c.Display.Width != 800 || c.Display.Height != 600 {
		t.Errorf("display = %dx%d, want 800x600", c.Display.Width, c.Display.Height)
	}
	if c.Display.MaxFrames != 60 {
		t.Errorf("MaxFrames = %d, want 60", c.Display.MaxFrames)
	}
	if !c.Log.Verbose {
		t.Error("Verbose = false, want true")
	}
	if c.Dir == "" {
		t.Error("Dir is empty after load")
	}
}

// Omitted sections keep their defaults.
func TestLoadPartialFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[log]
verbose = true
`)

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Display.Width != 640 || c.Display.Height != 480 {
		t.Errorf("display = %dx%d, want default 640x480", c.Display.Width, c.Display.Height)
	}
	if c.Runtime.MaxDepth != 0 {
		t.Errorf("MaxDepth = %d, want 0 (engine default)", c.Runtime.MaxDepth)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative max-depth", "[runtime]\nmax-depth = -1\n"},
		{"zero width", "[display]\nwidth = 0\n"},
		{"negative height", "[display]\nheight = -5\n"},
		{"malformed toml", "[display\nwidth=\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			if _, err := Load(dir); err == nil {
				t.Error("Load() accepted a bad config")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load() on an empty directory returned no error")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[display]\nwidth = 320\nheight = 200\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	c, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad() error: %v", err)
	}
	if c.Display.Width != 320 || c.Display.Height != 200 {
		t.Errorf("display = %dx%d, want 320x200", c.Display.Width, c.Display.Height)
	}

	wantDir, _ := filepath.Abs(root)
	if c.Dir != wantDir {
		t.Errorf("Dir = %q, want %q", c.Dir, wantDir)
	}
}

func TestFindAndLoadFallsBackToDefaults(t *testing.T) {
	c, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad() error: %v", err)
	}
	if c.Display.Width != 640 || c.Display.Height != 480 {
		t.Errorf("display = %dx%d, want default 640x480", c.Display.Width, c.Display.Height)
	}
	if c.Dir != "" {
		t.Errorf("Dir = %q, want empty for defaults", c.Dir)
	}
}
