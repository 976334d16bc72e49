package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "rolemap",
	Short: "Explain and plan directory group to cloud role migrations",
	Long: `rolemap serves the identity-migration explainer site. It classifies
directory groups into permission categories, infers functional roles for a
department and draws every explainer diagram as server-rendered SVG.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".rolemap.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
