package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-genrepo/pkg/sdk"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a command list without generating a repository",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, err := readInput(cmd.InOrStdin())
		if err != nil {
			return err
		}
		n, err := sdk.Validate(input)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d commands OK\n", n)
		return err
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
