package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagInput      string
	flagBare       bool
	flagConfig     string
	flagEpoch      string
	flagStep       time.Duration
	flagOutput     string
	flagShowID     string
	flagShowConfig bool
	flagDryRun     bool
	flagVerbosity  string
)

// rootCmd is the top-level command for genrepo.
var rootCmd = &cobra.Command{
	Use:   "genrepo [flags] REPO_PATH",
	Short: "Generate git repositories from a declarative list of commands",
	Long: "genrepo reads a JSON or YAML list of commit, merge, branch, tag and config commands " +
		"and builds the described commit graph in a git repository, creating it if needed.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	// Default action is generate.
	RunE: generateRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "command file, JSON or YAML (default: stdin)")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "info", "log verbosity: quiet, info, debug")

	rootCmd.Flags().BoolVar(&flagBare, "bare", false, "create a bare repository")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to defaults file (default: auto-detect .genrepo.yml or genrepo.yml)")
	rootCmd.Flags().StringVar(&flagEpoch, "epoch", "", "RFC 3339 time of the first signature; makes SHAs reproducible")
	rootCmd.Flags().DurationVar(&flagStep, "step", 0, "time between signatures when --epoch is set (default 1m)")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output format: text, json, or empty for none")
	rootCmd.Flags().StringVar(&flagShowID, "show-id", "", "print the SHA bound to a single identifier")
	rootCmd.Flags().BoolVar(&flagShowConfig, "show-config", false, "display the effective configuration and exit")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "generate in memory and print the resulting identifiers")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err to w, one line per combined error.
func printError(w io.Writer, err error) {
	var group interface{ Errors() []error }
	if errors.As(err, &group) {
		for _, e := range group.Errors() {
			fmt.Fprintf(w, "Error: %v\n", e)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
