package updater

import (
	"context"
	"errors"
	"fmt"

	"github.com/caedis/fabric-mod-manager/internal/diff"
	"github.com/caedis/fabric-mod-manager/internal/prompt"
	"github.com/caedis/fabric-mod-manager/internal/repository"
	"github.com/caedis/fabric-mod-manager/internal/side"
)

var (
	ErrLoaderNotDetected = errors.New("fabric loader not detected: it doesn't seem like you have fabric installed")
	ErrAlreadyInstalled  = errors.New("mod is already installed")
	ErrNotInRepository   = errors.New("mod is not in the repository")
	ErrNoRepository      = errors.New("no repository configured")
)

// NotInRepositoryError reports a mod the repository has no build of for the
// selected game version.
type NotInRepositoryError struct {
	ID          string
	GameVersion string
}

func (e *NotInRepositoryError) Error() string {
	return fmt.Sprintf("%s is not in the repository for Minecraft %s", e.ID, e.GameVersion)
}

func (e *NotInRepositoryError) Unwrap() error { return ErrNotInRepository }

// Repository is the part of the repository client the updater needs.
type Repository interface {
	LatestVersions(ctx context.Context, gameVersion string, ids []string) (*repository.Latest, error)
}

type Options struct {
	InstanceDir string
	// GameVersion skips detection when set.
	GameVersion string
	Repository  Repository
	Prompter    prompt.Prompter
	DryRun      bool
}

type UpdateResult struct {
	GameVersion     string
	Checked         int
	Updated         []string
	Declined        []string
	NotInRepository []string
	NonSemver       []string
	Unknown         []string
	Pending         []diff.ModChange
}

// ListEntry describes one installed mod.
type ListEntry struct {
	ID          string
	Name        string
	Version     string
	IsSemver    bool
	FileName    string
	Environment side.Side
}
