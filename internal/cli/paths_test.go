package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestConfigPath(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		custom := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", custom)

		path, err := configPath()
		if err != nil {
			t.Fatalf("configPath() error: %v", err)
		}
		if want := filepath.Join(custom, appName, "config.toml"); path != want {
			t.Errorf("configPath() = %q, want %q", path, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")

		path, err := configPath()
		if err != nil {
			t.Fatalf("configPath() error: %v", err)
		}
		home, _ := os.UserHomeDir()
		if want := filepath.Join(home, ".config", appName, "config.toml"); path != want {
			t.Errorf("configPath() = %q, want %q", path, want)
		}
	})
}

func TestFileCacheDirFromConfig(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.Cache.Dir = "/var/cache/posters"

	dir, err := c.fileCacheDir()
	if err != nil {
		t.Fatalf("fileCacheDir() error: %v", err)
	}
	if dir != "/var/cache/posters" {
		t.Errorf("fileCacheDir() = %q, want configured dir", dir)
	}
}

func TestCountEntries(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ab/one.json", "cd/two.json", "cd/.tmp-123"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if got := countEntries(dir); got != 2 {
		t.Errorf("countEntries() = %d, want 2", got)
	}
}
