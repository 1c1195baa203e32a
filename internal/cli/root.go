// Package cli wires the ecotrack command tree: footprint calculation,
// refinement, offset pricing, suggestion ranking, factor table
// validation, and the HTTP server.
package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ecotrack/ecotrack/internal/config"
	"github.com/ecotrack/ecotrack/internal/factors"
	"github.com/ecotrack/ecotrack/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// cfg is the configuration loaded during PersistentPreRunE, shared by
// all subcommands of one invocation.
var cfg *config.Config //nolint:gochecknoglobals // Set once per invocation

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root Cobra command for the ecotrack CLI.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ecotrack",
		Short:         "EcoTrack personal carbon footprint engine",
		Long:          "EcoTrack: calculate, refine, and offset personal carbon footprints from self-reported lifestyle activities",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file path (default: built-in defaults + ECOTRACK_* env)")
	cmd.PersistentFlags().String("factors", "", "emission factor table path (default: embedded factor set)")

	cmd.AddCommand(
		newCalcCmd(),
		newRefineCmd(),
		newOffsetsCmd(),
		newSuggestCmd(),
		newFactorsCmd(),
		newServeCmd(),
		newVersionCmd(ver),
	)

	return cmd
}

const rootCmdExample = `  # Calculate a baseline footprint from a JSON activity payload
  ecotrack calc --input activities.json

  # Apply the refinement layer and show insights
  ecotrack refine --input activities.json

  # Price offset projects for a 150 kg footprint
  ecotrack offsets 150

  # Serve the HTTP API
  ecotrack serve`

// setup loads configuration and initializes logging for one invocation.
func setup(cmd *cobra.Command) error {
	// A local .env is a development convenience; absence is normal. It
	// must land before config.Load so ECOTRACK_* overrides from the file
	// are seen.
	_ = godotenv.Load()

	configPath, _ := cmd.Flags().GetString("config")

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	logCfg := cfg.Logging
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
		logCfg.Format = "console"
	} else if logCfg.Format == "json" && isTerminal(os.Stderr) {
		// Humans at a terminal get console output; pipelines keep JSON.
		logCfg.Format = "console"
	}

	base := logging.NewLogger(logCfg)
	logger = logging.ComponentLogger(base, "cli")
	cmd.SetContext(logging.ContextWithLogger(cmd.Context(), base))

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}

// loadTable resolves the factor table for this invocation: the --factors
// flag wins, then the configured path, then the embedded default set.
func loadTable(cmd *cobra.Command) (*factors.Table, error) {
	path, _ := cmd.Flags().GetString("factors")
	if path == "" {
		path = cfg.Factors.Path
	}
	if path == "" {
		return factors.Default(), nil
	}
	return factors.Load(path)
}
