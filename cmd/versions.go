package cmd

import (
	"github.com/caedis/fabric-mod-manager/internal/instance"
	"github.com/caedis/fabric-mod-manager/internal/logging"
	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List Minecraft versions with Fabric installed",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := locate(instanceDir)
		if err != nil {
			return err
		}
		versions, err := instance.New(dir).GameVersions()
		if err != nil {
			return err
		}
		if len(versions) == 0 {
			logging.Warnf("No Fabric installations found in %s\n", dir)
			return nil
		}
		for _, v := range versions {
			logging.Infoln(v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionsCmd)
}
