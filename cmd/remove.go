package cmd

import (
	"context"

	"github.com/caedis/fabric-mod-manager/internal/updater"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <mod_id>",
	Aliases: []string{"rm"},
	Short:   "Delete an installed mod",
	Args:    usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := updaterOptions()
		if err != nil {
			return err
		}
		return updater.Remove(context.Background(), opts, args[0])
	},
}

func init() {
	removeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be removed without deleting")
	rootCmd.AddCommand(removeCmd)
}
