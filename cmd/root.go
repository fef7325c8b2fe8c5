package cmd

import (
	"fmt"
	"os"

	"github.com/graydon/scholar-digest/internal/update"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "scholar-digest",
	Short: "Google Scholar alert digester",
	Long: `scholar-digest collects Google Scholar alert mail from a Gmail account
and condenses it into a deduplicated plain-text digest, one block per
paper, that can be filtered and pruned with the edit subcommand.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.AddCommand(harvestCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scholar-digest %s (commit: %s, built: %s)\n", version, commit, date)
		if res := update.Check(cmd.Context(), version); res != nil {
			fmt.Printf("A newer release is available: %s\n", res.LatestVersion)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
