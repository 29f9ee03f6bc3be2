package updater

import (
	"context"
	"fmt"

	"github.com/caedis/fabric-mod-manager/internal/instance"
	"github.com/caedis/fabric-mod-manager/internal/logging"
	"github.com/caedis/fabric-mod-manager/internal/manifest"
)

// openInstance renames every jar to <id>.jar before any other work so that
// ids map directly to file names.
func openInstance(dir string) (*instance.Installation, error) {
	inst := instance.New(dir)
	if err := inst.NormalizeNames(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Add installs the newest repository build of id.
func Add(ctx context.Context, opts Options, id string) error {
	if err := manifest.ValidateID(id); err != nil {
		return err
	}
	inst, err := openInstance(opts.InstanceDir)
	if err != nil {
		return err
	}

	installed, err := inst.IsModInstalled(id)
	if err != nil {
		return err
	}
	if installed {
		return fmt.Errorf("%w: %s", ErrAlreadyInstalled, id)
	}

	if opts.Repository == nil {
		return ErrNoRepository
	}
	gameVersion, err := ResolveGameVersion(inst, opts.GameVersion, opts.Prompter)
	if err != nil {
		return err
	}

	latest, err := opts.Repository.LatestVersions(ctx, gameVersion, []string{id})
	if err != nil {
		return err
	}
	v, ok := latest.Lookup(id)
	if !ok {
		return &NotInRepositoryError{ID: id, GameVersion: gameVersion}
	}

	if opts.DryRun {
		logging.Infof("Would install %s %s for Minecraft %s\n", id, v.Version, gameVersion)
		return nil
	}

	logging.Infof("Installing %s %s for Minecraft %s...\n", id, v.Version, gameVersion)
	if err := inst.DownloadMod(ctx, v.DownloadURL, id); err != nil {
		return err
	}
	logging.Infof("Installed %s.\n", id)
	return nil
}

// Remove deletes the jar of an installed mod.
func Remove(ctx context.Context, opts Options, id string) error {
	if err := manifest.ValidateID(id); err != nil {
		return err
	}
	inst, err := openInstance(opts.InstanceDir)
	if err != nil {
		return err
	}

	installed, err := inst.IsModInstalled(id)
	if err != nil {
		return err
	}
	if !installed {
		return &instance.NotFoundError{ID: id}
	}

	if opts.DryRun {
		logging.Infof("Would remove %s\n", id)
		return nil
	}
	if err := inst.DeleteMod(id); err != nil {
		return err
	}
	logging.Infof("Removed %s.\n", id)
	return nil
}

// List returns every installed mod in directory order.
func List(opts Options) ([]ListEntry, error) {
	inst, err := openInstance(opts.InstanceDir)
	if err != nil {
		return nil, err
	}
	mods, err := inst.Mods()
	if err != nil {
		return nil, err
	}

	entries := make([]ListEntry, 0, len(mods))
	for _, m := range mods {
		entries = append(entries, ListEntry{
			ID:          m.ID(),
			Name:        m.Name(),
			Version:     m.Version(),
			IsSemver:    m.IsSemver(),
			FileName:    m.FileName(),
			Environment: m.Environment(),
		})
	}
	return entries, nil
}
