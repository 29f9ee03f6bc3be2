package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

var ErrInstallNotFound = errors.New("install directory not found")

// Locator resolves the Minecraft directory to operate on. An explicit
// directory, when non-empty, always wins.
type Locator func(explicit string) (string, error)

// Environment holds the process facts a Locator depends on.
type Environment struct {
	GOOS       string
	WorkDir    string
	HomeDir    string
	AppDataDir string
}

// SystemEnvironment reads the environment of the running process.
func SystemEnvironment() Environment {
	wd, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	return Environment{
		GOOS:       runtime.GOOS,
		WorkDir:    wd,
		HomeDir:    home,
		AppDataDir: os.Getenv("APPDATA"),
	}
}

// DefaultDir returns the launcher's default game directory for the platform.
func (e Environment) DefaultDir() string {
	switch e.GOOS {
	case "windows":
		base := e.AppDataDir
		if base == "" {
			base = filepath.Join(e.HomeDir, "AppData", "Roaming")
		}
		return filepath.Join(base, ".minecraft")
	case "darwin":
		return filepath.Join(e.HomeDir, "Library", "Application Support", "minecraft")
	default:
		return filepath.Join(e.HomeDir, ".minecraft")
	}
}

// NewLocator builds a Locator for env. Without an explicit directory the
// working directory is used when it already holds a mods folder, otherwise
// the platform default.
func NewLocator(env Environment) Locator {
	return func(explicit string) (string, error) {
		dir := explicit
		switch {
		case dir != "":
		case env.WorkDir != "" && isDir(filepath.Join(env.WorkDir, "mods")):
			dir = env.WorkDir
		default:
			dir = env.DefaultDir()
		}

		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", dir, err)
		}
		if !isDir(abs) {
			return "", fmt.Errorf("%w: %s", ErrInstallNotFound, abs)
		}
		return abs, nil
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
