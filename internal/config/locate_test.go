package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  Environment
		want string
	}{
		{
			name: "linux",
			env:  Environment{GOOS: "linux", HomeDir: "/home/steve"},
			want: filepath.Join("/home/steve", ".minecraft"),
		},
		{
			name: "windows appdata",
			env:  Environment{GOOS: "windows", HomeDir: "/users/steve", AppDataDir: "/appdata"},
			want: filepath.Join("/appdata", ".minecraft"),
		},
		{
			name: "windows without appdata",
			env:  Environment{GOOS: "windows", HomeDir: "/users/steve"},
			want: filepath.Join("/users/steve", "AppData", "Roaming", ".minecraft"),
		},
		{
			name: "darwin",
			env:  Environment{GOOS: "darwin", HomeDir: "/Users/steve"},
			want: filepath.Join("/Users/steve", "Library", "Application Support", "minecraft"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.env.DefaultDir(); got != tt.want {
				t.Fatalf("DefaultDir=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestLocator(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	defaultDir := filepath.Join(home, ".minecraft")
	if err := os.MkdirAll(defaultDir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	withMods := t.TempDir()
	if err := os.MkdirAll(filepath.Join(withMods, "mods"), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	withoutMods := t.TempDir()
	explicit := t.TempDir()

	t.Run("explicit wins", func(t *testing.T) {
		locate := NewLocator(Environment{GOOS: "linux", HomeDir: home, WorkDir: withMods})
		got, err := locate(explicit)
		if err != nil {
			t.Fatalf("locate failed: %v", err)
		}
		if got != explicit {
			t.Fatalf("locate=%q want=%q", got, explicit)
		}
	})

	t.Run("working directory with mods", func(t *testing.T) {
		locate := NewLocator(Environment{GOOS: "linux", HomeDir: home, WorkDir: withMods})
		got, err := locate("")
		if err != nil {
			t.Fatalf("locate failed: %v", err)
		}
		if got != withMods {
			t.Fatalf("locate=%q want=%q", got, withMods)
		}
	})

	t.Run("falls back to platform default", func(t *testing.T) {
		locate := NewLocator(Environment{GOOS: "linux", HomeDir: home, WorkDir: withoutMods})
		got, err := locate("")
		if err != nil {
			t.Fatalf("locate failed: %v", err)
		}
		if got != defaultDir {
			t.Fatalf("locate=%q want=%q", got, defaultDir)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		locate := NewLocator(Environment{GOOS: "linux", HomeDir: home, WorkDir: withoutMods})
		_, err := locate(filepath.Join(home, "nope"))
		if !errors.Is(err, ErrInstallNotFound) {
			t.Fatalf("expected ErrInstallNotFound, got %v", err)
		}
	})

	t.Run("missing default", func(t *testing.T) {
		locate := NewLocator(Environment{GOOS: "darwin", HomeDir: home, WorkDir: withoutMods})
		if _, err := locate(""); !errors.Is(err, ErrInstallNotFound) {
			t.Fatalf("expected ErrInstallNotFound, got %v", err)
		}
	})
}
