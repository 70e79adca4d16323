package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped by the release build with -ldflags "-X".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show which genrepo build is running",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "genrepo %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
