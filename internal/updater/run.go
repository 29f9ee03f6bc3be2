package updater

import (
	"context"
	"strings"

	"github.com/caedis/fabric-mod-manager/internal/diff"
	"github.com/caedis/fabric-mod-manager/internal/logging"
)

// Update checks every installed semver mod against the repository and, for
// each one with a newer build, asks before downloading it.
func Update(ctx context.Context, opts Options) (*UpdateResult, error) {
	inst, err := openInstance(opts.InstanceDir)
	if err != nil {
		return nil, err
	}
	if opts.Repository == nil {
		return nil, ErrNoRepository
	}

	gameVersion, err := ResolveGameVersion(inst, opts.GameVersion, opts.Prompter)
	if err != nil {
		return nil, err
	}
	result := &UpdateResult{GameVersion: gameVersion}

	mods, err := inst.Mods()
	if err != nil {
		return nil, err
	}

	installed := make(map[string]string, len(mods))
	var ids []string
	for _, m := range mods {
		if !m.IsSemver() {
			result.NonSemver = append(result.NonSemver, m.ID())
			logging.Warnf("Could not check %s for updates: version %q is not a semantic version\n", m.ID(), m.RawVersion())
			continue
		}
		installed[m.ID()] = m.Version()
		ids = append(ids, m.ID())
	}
	result.Checked = len(ids)
	logging.Debugf("Verbose: update candidates=%d non-semver=%d game-version=%s\n", len(ids), len(result.NonSemver), gameVersion)

	if len(ids) == 0 {
		logging.Infoln("No installed mods can be checked for updates.")
		return result, nil
	}

	logging.Infof("Checking %d mods for Minecraft %s...\n", len(ids), gameVersion)
	latest, err := opts.Repository.LatestVersions(ctx, gameVersion, ids)
	if err != nil {
		return nil, err
	}

	result.NotInRepository = append(result.NotInRepository, latest.NotInRepository...)
	if len(result.NotInRepository) > 0 {
		logging.Warnf("Not in the repository: %s\n", strings.Join(result.NotInRepository, ", "))
	}

	remote := make(map[string]string, len(latest.Versions))
	for id, v := range latest.Versions {
		remote[id] = v.Version
	}
	changes := diff.Compute(installed, remote)
	outdated, current, unknown, untracked := diff.Summary(changes)
	logging.Debugf("Verbose: diff summary outdated=%d current=%d unknown=%d untracked=%d\n", outdated, current, unknown, untracked)

	for _, c := range diff.Filter(changes, diff.Unknown) {
		result.Unknown = append(result.Unknown, c.ID)
		logging.Warnf("Could not compare %s: repository version %q is not a semantic version\n", c.ID, c.LatestVersion)
	}

	pending := diff.Filter(changes, diff.Outdated)
	result.Pending = pending
	if len(pending) == 0 {
		logging.Infoln("All mods are up to date.")
		return result, nil
	}

	if opts.DryRun {
		printDryRun(pending)
		return result, nil
	}

	for _, c := range pending {
		ok, err := opts.Prompter.Confirm(updateQuestion(c))
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Declined = append(result.Declined, c.ID)
			logging.Debugf("Verbose: update declined mod=%s\n", c.ID)
			continue
		}

		v, _ := latest.Lookup(c.ID)
		if err := inst.DownloadMod(ctx, v.DownloadURL, c.ID); err != nil {
			return nil, err
		}
		result.Updated = append(result.Updated, c.ID)
		logging.Infof("Updated %s to %s.\n", c.ID, c.LatestVersion)
	}

	return result, nil
}

func updateQuestion(c diff.ModChange) string {
	return c.ID + " is out of date: " + c.InstalledVersion + " vs " + c.LatestVersion + ". Would you like to update? (y/n): "
}

func printDryRun(pending []diff.ModChange) {
	logging.Infof("\nDry run - no changes made:\n")
	logging.Infof("  %d would be updated\n", len(pending))
	for _, c := range pending {
		logging.Infof("  ~ %s %s -> %s\n", c.ID, c.InstalledVersion, c.LatestVersion)
	}
}
