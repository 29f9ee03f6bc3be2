package instance

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caedis/fabric-mod-manager/internal/logging"
	"github.com/caedis/fabric-mod-manager/internal/manifest"
	"github.com/caedis/fabric-mod-manager/internal/semver"
	"github.com/caedis/fabric-mod-manager/internal/side"
)

// Mod is one installed mod jar.
type Mod struct {
	path     string
	manifest *manifest.Manifest
}

// LoadMod reads the manifest of the jar at path.
func LoadMod(path string) (*Mod, error) {
	m, err := manifest.Read(path)
	if err != nil {
		return nil, err
	}
	return &Mod{path: path, manifest: m}, nil
}

// ID returns the mod identifier declared in fabric.mod.json.
func (m *Mod) ID() string { return m.manifest.ID }

// Version returns the declared version with leading zeroes stripped.
func (m *Mod) Version() string { return semver.Normalize(m.manifest.Version) }

// RawVersion returns the version exactly as declared.
func (m *Mod) RawVersion() string { return m.manifest.Version }

// IsSemver reports whether Version is a valid semantic version and can
// therefore be compared against the repository.
func (m *Mod) IsSemver() bool { return semver.IsValid(m.Version()) }

func (m *Mod) Name() string { return m.manifest.Name }

func (m *Mod) Environment() side.Side { return side.Parse(m.manifest.Environment) }

func (m *Mod) Path() string { return m.path }

func (m *Mod) FileName() string { return filepath.Base(m.path) }

// CanonicalFileName is "<id>.jar".
func (m *Mod) CanonicalFileName() string { return jarName(m.ID()) }

// RenameToCanonical renames the jar to <id>.jar in the same directory. An
// existing file at the target that is not this jar is left alone and a
// RenameConflictError is returned.
func (m *Mod) RenameToCanonical() error {
	target := filepath.Join(filepath.Dir(m.path), m.CanonicalFileName())
	if target == m.path {
		return nil
	}
	if targetInfo, err := os.Stat(target); err == nil {
		// Case-insensitive filesystems report Foo.jar and foo.jar as one file.
		if info, err := os.Stat(m.path); err != nil || !os.SameFile(info, targetInfo) {
			return &RenameConflictError{ID: m.ID(), File: m.FileName(), Target: m.CanonicalFileName()}
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", m.CanonicalFileName(), err)
	}
	return m.moveTo(target)
}

func (m *Mod) moveTo(path string) error {
	if err := os.Rename(m.path, path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", m.FileName(), filepath.Base(path), err)
	}
	logging.Debugf("Verbose: renamed %s -> %s\n", m.FileName(), filepath.Base(path))
	m.path = path
	return nil
}

func jarName(id string) string {
	return id + ".jar"
}
