package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCachePathCommand(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	out, err := run("cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := strings.TrimSpace(out), filepath.Join(xdg, appName); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envRedisURL, "")

	out, err := run("cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "empty") {
		t.Errorf("clear on a fresh cache = %q", out)
	}

	if _, err := run("report", "--no-image"); err != nil {
		t.Fatal(err)
	}
	dir, _ := cacheDir()
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		t.Fatalf("report should populate %s: %v", dir, err)
	}

	out, err = run("cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 1") {
		t.Errorf("clear output = %q", out)
	}

	out, err = run("report", "--no-image")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, iconCached) {
		t.Errorf("report after clear should be fresh:\n%s", out)
	}
}

func TestNoCacheFlag(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	t.Setenv(envRedisURL, "")

	if _, err := run("--no-cache", "report", "--no-image"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(xdg, appName)); !os.IsNotExist(err) {
		t.Errorf("--no-cache should not create the cache directory: %v", err)
	}
}
