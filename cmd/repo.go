package cmd

import (
	"context"
	"time"

	"github.com/caedis/fabric-mod-manager/internal/logging"
	"github.com/spf13/cobra"
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Check that the mod repository is reachable",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := newRepository()
		if err != nil {
			return err
		}
		start := time.Now()
		banner, err := repo.Ping(context.Background())
		if err != nil {
			return err
		}
		logging.Infof("%s: %s (%s)\n", repo.BaseURL(), banner, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(repoCmd)
}
