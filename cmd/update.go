package cmd

import (
	"context"
	"strings"

	"github.com/caedis/fabric-mod-manager/internal/logging"
	"github.com/caedis/fabric-mod-manager/internal/prompt"
	"github.com/caedis/fabric-mod-manager/internal/updater"
	"github.com/spf13/cobra"
)

var assumeYes bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update installed mods to the latest repository versions",
	Long: `Checks every installed mod with a semantic version against the repository
and asks before replacing each outdated jar. Mods with other version schemes
cannot be checked and are reported.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := updaterOptions()
		if err != nil {
			return err
		}
		repo, err := newRepository()
		if err != nil {
			return err
		}
		opts.Repository = repo
		if assumeYes {
			opts.Prompter = prompt.AssumeYes(opts.Prompter)
		}

		result, err := updater.Update(context.Background(), opts)
		if err != nil {
			return err
		}

		if dryRun || len(result.Pending) == 0 {
			return nil
		}

		logging.Infof("\nUpdate complete for Minecraft %s:\n", result.GameVersion)
		logging.Infof("  Mods: %d checked, %d updated, %d skipped\n", result.Checked, len(result.Updated), len(result.Declined))
		if len(result.Declined) > 0 {
			logging.Infof("  Skipped: %s\n", strings.Join(result.Declined, ", "))
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without modifying anything")
	updateCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Update every outdated mod without asking")
	rootCmd.AddCommand(updateCmd)
}
