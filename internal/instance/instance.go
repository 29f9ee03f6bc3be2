package instance

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/caedis/fabric-mod-manager/internal/downloader"
	"github.com/caedis/fabric-mod-manager/internal/logging"
	"github.com/caedis/fabric-mod-manager/internal/manifest"
)

var (
	loaderVersionPattern = regexp.MustCompile(`^fabric-loader-\d+\.\d+\.\d+-.+`)
	loaderPrefixPattern  = regexp.MustCompile(`^fabric-loader-\d+\.\d+\.\d+-`)
)

var (
	ErrNotInstalled = errors.New("mod is not installed")
	ErrDuplicateMod = errors.New("duplicate mod id")
	ErrNameConflict = errors.New("mod file name conflict")
)

// NotFoundError reports a mod id with no jar in the mods directory.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("mod %q is not installed", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotInstalled }

// DuplicateModError reports two jars declaring the same mod id.
type DuplicateModError struct {
	ID    string
	Files []string
}

func (e *DuplicateModError) Error() string {
	return fmt.Sprintf("mod %q is installed more than once (%s); remove all but one", e.ID, strings.Join(e.Files, ", "))
}

func (e *DuplicateModError) Unwrap() error { return ErrDuplicateMod }

// RenameConflictError reports a jar whose canonical name is taken by another
// file.
type RenameConflictError struct {
	ID     string
	File   string
	Target string
}

func (e *RenameConflictError) Error() string {
	return fmt.Sprintf("cannot rename %s to %s for mod %q: file already exists", e.File, e.Target, e.ID)
}

func (e *RenameConflictError) Unwrap() error { return ErrNameConflict }

// Installation is a Minecraft game directory. It holds no state besides its
// root path; every query rescans the filesystem.
type Installation struct {
	Root string
}

func New(root string) *Installation {
	return &Installation{Root: root}
}

func (i *Installation) ModsDir() string { return filepath.Join(i.Root, "mods") }

func (i *Installation) VersionsDir() string { return filepath.Join(i.Root, "versions") }

// GameVersions returns the Minecraft versions that have Fabric installed.
// A versions/<name> directory qualifies when <name> looks like
// "fabric-loader-<x.y.z>-<game>" or when it contains server-<name>.jar.
func (i *Installation) GameVersions() ([]string, error) {
	versionsDir := i.VersionsDir()
	entries, err := os.ReadDir(versionsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading versions directory: %w", err)
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if !loaderVersionPattern.MatchString(name) && !fileExists(filepath.Join(versionsDir, name, "server-"+name+".jar")) {
			continue
		}
		version := loaderPrefixPattern.ReplaceAllString(name, "")
		logging.Debugf("Verbose: detected game version %s from %s\n", version, name)
		seen[version] = true
	}

	versions := make([]string, 0, len(seen))
	for v := range seen {
		versions = append(versions, v)
	}
	slices.Sort(versions)
	return versions, nil
}

// ModFiles lists the top-level .jar files in the mods directory.
func (i *Installation) ModFiles() ([]string, error) {
	modsDir := i.ModsDir()
	var files []string
	err := filepath.WalkDir(modsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if path == modsDir {
			return nil
		}
		if d.IsDir() {
			return filepath.SkipDir
		}
		if filepath.Ext(d.Name()) == ".jar" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning mods directory: %w", err)
	}
	return files, nil
}

// Mods reads the manifest of every jar in the mods directory. Two jars that
// declare the same id are rejected with a DuplicateModError.
func (i *Installation) Mods() ([]*Mod, error) {
	files, err := i.ModFiles()
	if err != nil {
		return nil, err
	}

	mods := make([]*Mod, 0, len(files))
	byID := make(map[string]*Mod, len(files))
	for _, path := range files {
		mod, err := LoadMod(path)
		if err != nil {
			return nil, err
		}
		if prev, ok := byID[mod.ID()]; ok {
			return nil, &DuplicateModError{ID: mod.ID(), Files: []string{prev.FileName(), mod.FileName()}}
		}
		byID[mod.ID()] = mod
		mods = append(mods, mod)
		logging.Debugf("Verbose: scanned mod %s version=%s filename=%s\n", mod.ID(), mod.Version(), mod.FileName())
	}
	return mods, nil
}

// NormalizeNames renames every installed jar to <id>.jar. Jars that need a
// new name are first moved aside to temporary names so that one mod's target
// can be another mod's current file (a.jar declaring b and b.jar declaring a).
// Since ids are unique, no target is occupied once the first pass is done.
func (i *Installation) NormalizeNames() error {
	mods, err := i.Mods()
	if err != nil {
		return err
	}

	var pending []*Mod
	for _, mod := range mods {
		if mod.FileName() != mod.CanonicalFileName() {
			pending = append(pending, mod)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	original := make(map[*Mod]string, len(pending))
	for _, mod := range pending {
		original[mod] = mod.Path()
	}
	parked := make(map[*Mod]bool, len(pending))
	park := func(mod *Mod) error {
		tmp, err := reserveTempName(i.ModsDir(), mod.ID())
		if err != nil {
			return err
		}
		if err := mod.moveTo(tmp); err != nil {
			os.Remove(tmp)
			return err
		}
		parked[mod] = true
		return nil
	}
	// restore puts every moved jar back under its original name, parking the
	// renamed ones first since a swap leaves them on each other's names.
	restore := func() {
		for _, mod := range pending {
			if !parked[mod] && mod.Path() != original[mod] {
				if err := park(mod); err != nil {
					logging.Warnf("could not restore %s: %v\n", filepath.Base(original[mod]), err)
				}
			}
		}
		for _, mod := range pending {
			if parked[mod] {
				if err := mod.moveTo(original[mod]); err != nil {
					logging.Warnf("could not restore %s: %v\n", filepath.Base(original[mod]), err)
				}
			}
		}
	}

	for _, mod := range pending {
		if err := park(mod); err != nil {
			restore()
			return err
		}
	}
	for _, mod := range pending {
		// A directory or stray file can still hold the target.
		if err := mod.RenameToCanonical(); err != nil {
			restore()
			return err
		}
		parked[mod] = false
	}
	return nil
}

// reserveTempName creates an empty placeholder in dir that a jar can be
// renamed over. The name does not end in .jar so scans skip it.
func reserveTempName(dir, id string) (string, error) {
	f, err := os.CreateTemp(dir, "."+id+"-*.renaming")
	if err != nil {
		return "", fmt.Errorf("reserving temporary name for %s: %w", id, err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// IsModInstalled reports whether some installed jar declares id.
func (i *Installation) IsModInstalled(id string) (bool, error) {
	mods, err := i.Mods()
	if err != nil {
		return false, err
	}
	for _, mod := range mods {
		if mod.ID() == id {
			return true, nil
		}
	}
	return false, nil
}

// DownloadMod fetches url into mods/<id>.jar, replacing any existing file.
func (i *Installation) DownloadMod(ctx context.Context, url, id string) error {
	if err := manifest.ValidateID(id); err != nil {
		return err
	}
	if err := os.MkdirAll(i.ModsDir(), 0o755); err != nil {
		return fmt.Errorf("creating mods directory: %w", err)
	}
	return downloader.DownloadToFile(ctx, url, filepath.Join(i.ModsDir(), jarName(id)))
}

// DeleteMod removes mods/<id>.jar.
func (i *Installation) DeleteMod(id string) error {
	if err := manifest.ValidateID(id); err != nil {
		return err
	}
	path := filepath.Join(i.ModsDir(), jarName(id))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{ID: id}
		}
		return fmt.Errorf("removing %s: %w", jarName(id), err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
