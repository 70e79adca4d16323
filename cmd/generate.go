package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MyCarrier-DevOps/go-genrepo/internal/config"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/logging"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/output"
	"github.com/MyCarrier-DevOps/go-genrepo/pkg/sdk"
)

func generateRunE(cmd *cobra.Command, args []string) error {
	// 1. Build logger.
	logger, err := logging.NewStderr(flagVerbosity)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// 2. Resolve options from flags.
	opts, err := buildOptions(args)
	if err != nil {
		return err
	}
	opts.Logger = logger

	// 3. Show config mode: print and exit.
	if flagShowConfig {
		return showConfig(cmd.OutOrStdout(), opts)
	}

	// 4. Read commands.
	input, err := readInput(cmd.InOrStdin())
	if err != nil {
		return err
	}
	opts.Input = input

	// 5. Generate.
	result, err := sdk.Generate(opts)
	if err != nil {
		return err
	}
	logger.Info("repository generated",
		zap.String("path", result.Path),
		zap.Int("commands", result.Commands),
		zap.Int("ids", len(result.Bindings)))

	// 6. Write output.
	return writeOutput(cmd.OutOrStdout(), result.Bindings)
}

// buildOptions maps flags and the REPO_PATH argument to generation options.
func buildOptions(args []string) (sdk.Options, error) {
	opts := sdk.Options{
		Bare:       flagBare,
		InMemory:   flagDryRun,
		ConfigPath: flagConfig,
		Step:       flagStep,
	}

	if len(args) > 0 {
		opts.Path = args[0]
	}
	if opts.Path == "" && !opts.InMemory {
		return opts, errors.New("REPO_PATH is required unless --dry-run is set")
	}
	if opts.InMemory {
		opts.Path = ""
	}

	if opts.ConfigPath == "" {
		opts.ConfigPath = config.Discover(".")
	}

	if flagEpoch != "" {
		epoch, err := time.Parse(time.RFC3339, flagEpoch)
		if err != nil {
			return opts, fmt.Errorf("invalid --epoch %q: %w", flagEpoch, err)
		}
		opts.Epoch = &epoch
	}

	return opts, nil
}

// readInput reads the command list from --input, or from stdin when the flag
// is empty or "-".
func readInput(stdin io.Reader) ([]byte, error) {
	if flagInput == "" || flagInput == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading commands from stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(flagInput)
	if err != nil {
		return nil, fmt.Errorf("reading command file: %w", err)
	}
	return data, nil
}

// showConfig prints the effective configuration as JSON.
func showConfig(w io.Writer, opts sdk.Options) error {
	settings, err := sdk.Configuration(opts)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeOutput writes the bindings in the requested format. Nothing is
// written by default, except for dry runs which list every binding.
func writeOutput(w io.Writer, bindings map[string]string) error {
	if flagShowID != "" {
		return output.WriteBinding(w, bindings, flagShowID)
	}

	format := flagOutput
	if format == "" && flagDryRun {
		format = "text"
	}

	switch format {
	case "json":
		return output.WriteJSON(w, bindings)
	case "text":
		return output.WriteAll(w, bindings)
	case "":
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
