package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carbonops/carbonpack/internal/render"
	"github.com/carbonops/carbonpack/internal/tui"
)

// newWizardCmd creates the "wizard" subcommand: an interactive three-step
// submission flow (profile, activity data, attestation) feeding the same
// pipeline as the report command.
func newWizardCmd(state *appState) *cobra.Command {
	var (
		out            string
		format         string
		factorsOverlay string
	)

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Fill in a submission interactively and generate the pack",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) {
				return errors.New("wizard requires an interactive terminal; use 'carbonpack report' with a submission file instead")
			}

			sub, err := tui.RunWizard()
			if err != nil {
				return err
			}
			if sub == nil {
				// Aborted by the user.
				return nil
			}
			if err := sub.Validate(); err != nil {
				return fmt.Errorf("invalid submission: %w", err)
			}

			registry, err := state.registry(factorsOverlay)
			if err != nil {
				return err
			}

			if format == "" {
				format = state.cfg.Output.DefaultFormat
			}
			if out == "" && format == render.FormatPDF {
				out = defaultPackName
			}

			renderer, err := render.ForFormat(format, out == "" && isTerminal(os.Stdout))
			if err != nil {
				return err
			}

			doc := buildDocument(cmd.Context(), sub, registry, resolveAsOf(""))
			if err := writeDocument(doc, renderer, out, cmd.OutOrStdout()); err != nil {
				return err
			}
			if out != "" {
				cmd.Printf("Carbon pack written to %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (default Carbon_Pack.pdf for pdf, stdout otherwise)")
	cmd.Flags().StringVar(&format, "format", "", "output format: pdf, text, or json (default from config)")
	cmd.Flags().StringVar(&factorsOverlay, "factors-overlay", "", "factor overlay YAML file")

	return cmd
}
