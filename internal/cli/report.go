package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carbonops/carbonpack/internal/render"
	"github.com/carbonops/carbonpack/internal/submission"
)

// defaultPackName is the output file name when rendering a PDF without an
// explicit --out.
const defaultPackName = "Carbon_Pack.pdf"

// reportFlags holds the report command's flag values.
type reportFlags struct {
	SubmissionPath string
	Out            string
	Format         string
	AsOf           string
	FactorsOverlay string
}

// newReportCmd creates the "report" subcommand: one submission in, one
// rendered carbon pack out.
func newReportCmd(state *appState) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a carbon pack from a submission file",
		Long: "Reads a YAML submission (company profile, activity quantities, evidence, signer), " +
			"calculates scope totals with the ADEME factor table, and renders the disclosure document.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, state, flags)
		},
	}

	cmd.Flags().StringVar(&flags.SubmissionPath, "submission", "", "submission YAML file (required)")
	cmd.Flags().StringVar(&flags.Out, "out", "", "output file (default Carbon_Pack.pdf for pdf, stdout otherwise)")
	cmd.Flags().StringVar(&flags.Format, "format", "", "output format: pdf, text, or json (default from config)")
	cmd.Flags().StringVar(&flags.AsOf, "as-of", "", "generation date to print on the document (default today)")
	cmd.Flags().StringVar(&flags.FactorsOverlay, "factors-overlay", "", "factor overlay YAML file")
	_ = cmd.MarkFlagRequired("submission")

	return cmd
}

func runReport(cmd *cobra.Command, state *appState, flags reportFlags) error {
	ctx := cmd.Context()

	sub, err := submission.Load(flags.SubmissionPath)
	if err != nil {
		return err
	}
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("invalid submission: %w", err)
	}

	registry, err := state.registry(flags.FactorsOverlay)
	if err != nil {
		return err
	}

	format := flags.Format
	if format == "" {
		format = state.cfg.Output.DefaultFormat
	}

	out := flags.Out
	if out == "" && format == render.FormatPDF {
		out = defaultPackName
	}

	styled := out == "" && isTerminal(os.Stdout)
	renderer, err := render.ForFormat(format, styled)
	if err != nil {
		return err
	}

	doc := buildDocument(ctx, sub, registry, resolveAsOf(flags.AsOf))
	if err := writeDocument(doc, renderer, out, cmd.OutOrStdout()); err != nil {
		return err
	}

	if out != "" {
		state.logger.Info().Str("out", out).Str("format", format).Msg("carbon pack written")
		cmd.Printf("Carbon pack written to %s\n", out)
	}
	return nil
}
