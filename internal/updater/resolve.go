package updater

import (
	"fmt"

	"github.com/caedis/fabric-mod-manager/internal/instance"
	"github.com/caedis/fabric-mod-manager/internal/logging"
	"github.com/caedis/fabric-mod-manager/internal/prompt"
)

// ResolveGameVersion picks the Minecraft version to query the repository
// for. An override is used as-is. Otherwise the versions with Fabric
// installed are detected; a single one is chosen automatically and several
// are offered through p.
func ResolveGameVersion(inst *instance.Installation, override string, p prompt.Prompter) (string, error) {
	if override != "" {
		logging.Debugf("Verbose: game version override=%s\n", override)
		return override, nil
	}

	versions, err := inst.GameVersions()
	if err != nil {
		return "", err
	}
	logging.Debugf("Verbose: detected game versions=%v\n", versions)

	switch len(versions) {
	case 0:
		return "", ErrLoaderNotDetected
	case 1:
		return versions[0], nil
	}

	if p == nil {
		return "", fmt.Errorf("multiple game versions detected (%d); choose one with --game-version", len(versions))
	}
	idx, err := p.Select("Multiple Minecraft versions with Fabric found. Which one should be used?", versions)
	if err != nil {
		return "", err
	}
	return versions[idx], nil
}
