package cmd

import (
	"context"

	"github.com/caedis/fabric-mod-manager/internal/updater"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <mod_id>",
	Short: "Install the latest version of a mod from the repository",
	Args:  usageArgs(cobra.ExactArgs(1)),
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
		return updater.Add(context.Background(), opts, args[0])
	},
}

func init() {
	addCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be installed without downloading")
	rootCmd.AddCommand(addCmd)
}
