// Package cli wires the carbonpack command tree: report generation, batch
// processing, factor inspection, and the interactive wizard.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carbonops/carbonpack/internal/config"
	"github.com/carbonops/carbonpack/internal/factors"
	"github.com/carbonops/carbonpack/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// appState carries configuration and the logger across subcommands for one
// invocation. Each invocation builds its own state; nothing is process-wide.
type appState struct {
	cfg    config.Config
	logger zerolog.Logger
}

// registry builds the effective factor registry: the built-in ADEME table
// plus the overlay from the flag or, failing that, the config file.
func (s *appState) registry(overlayFlag string) (*factors.Registry, error) {
	reg := factors.Builtin()

	overlay := overlayFlag
	if overlay == "" {
		overlay = s.cfg.Factors.Overlay
	}
	if overlay == "" {
		return reg, nil
	}

	overlayFactors, err := factors.LoadOverlay(overlay)
	if err != nil {
		return nil, err
	}
	return reg.WithOverlay(overlayFactors...)
}

// NewRootCmd creates the root Cobra command for the carbonpack CLI.
// It wires up logging and the report, batch, factors, and wizard
// subcommands.
func NewRootCmd(ver string) *cobra.Command {
	state := &appState{cfg: config.Default()}

	cmd := &cobra.Command{
		Use:     "carbonpack",
		Short:   "Supplier carbon disclosure pack generator",
		Long:    "Carbon Pack: turn self-reported activity data into a GHG Protocol aligned disclosure document",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			if cfgPath == "" {
				cfgPath = config.DefaultPath()
			}

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Logging.Level = "debug"
				cfg.Logging.Format = "console"
			}
			state.cfg = cfg

			logger := logging.New(logging.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Writer: cmd.ErrOrStderr(),
			})
			state.logger = logging.ComponentLogger(logger, "cli")
			cmd.SetContext(state.logger.WithContext(cmd.Context()))

			state.logger.Debug().Str("command", cmd.Name()).Msg("command started")
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file path (default $HOME/.carbonpack/config.yaml)")

	cmd.AddCommand(newReportCmd(state), newBatchCmd(state), newFactorsCmd(state), newWizardCmd(state))

	return cmd
}

const rootCmdExample = `  # Generate a PDF carbon pack from a submission file
  carbonpack report --submission supplier.yaml --out Carbon_Pack.pdf

  # Inspect the document model as JSON
  carbonpack report --submission supplier.yaml --format json

  # Generate packs for a directory of submissions
  carbonpack batch ./submissions --out-dir ./packs --concurrency 8

  # List the emission factor table
  carbonpack factors list

  # Fill in a submission interactively
  carbonpack wizard --out Carbon_Pack.pdf`
