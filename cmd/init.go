package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ziadkadry99/rolemap/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize rolemap configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the explainer site and writes the config file (.rolemap.yml by default).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
