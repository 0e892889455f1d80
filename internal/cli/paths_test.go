package cli

import (
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	tests := []struct {
		name string
		xdg  string
		home string
		want string
	}{
		{"xdg", "/tmp/xdg-cache", "/home/erika", filepath.Join("/tmp/xdg-cache", "orgchart")},
		{"home fallback", "", "/home/erika", filepath.Join("/home/erika", ".cache", "orgchart")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			t.Setenv("HOME", tt.home)

			got, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
			if filepath.Base(got) != appName {
				t.Errorf("cacheDir() = %q, should end in %q", got, appName)
			}
		})
	}
}

func TestCacheDirNoHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "")

	if dir, err := cacheDir(); err == nil {
		t.Errorf("cacheDir() = %q, want error without HOME", dir)
	}
}

func TestCachePathFollowsXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	stdout, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(xdg, appName) + "\n"; stdout != want {
		t.Errorf("cache path = %q, want %q", stdout, want)
	}
}
