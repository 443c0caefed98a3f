package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carbonops/carbonpack/internal/batch"
	"github.com/carbonops/carbonpack/internal/render"
	"github.com/carbonops/carbonpack/internal/submission"
)

// batchFlags holds the batch command's flag values.
type batchFlags struct {
	OutDir         string
	Format         string
	Concurrency    int
	AsOf           string
	FactorsOverlay string
}

// newBatchCmd creates the "batch" subcommand: a directory of submission
// files in, one pack per submission out. Submissions are independent, so
// packs are built concurrently.
func newBatchCmd(state *appState) *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "batch <submissions-dir>",
		Short: "Generate carbon packs for a directory of submissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, state, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.OutDir, "out-dir", "packs", "directory for generated packs")
	cmd.Flags().StringVar(&flags.Format, "format", render.FormatPDF, "output format: pdf, text, or json")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", batch.DefaultConcurrency, "packs built in parallel")
	cmd.Flags().StringVar(&flags.AsOf, "as-of", "", "generation date to print on the documents (default today)")
	cmd.Flags().StringVar(&flags.FactorsOverlay, "factors-overlay", "", "factor overlay YAML file")

	return cmd
}

func runBatch(cmd *cobra.Command, state *appState, flags batchFlags, dir string) error {
	ctx := cmd.Context()

	paths, err := submissionPaths(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no submission files (*.yaml, *.yml) in %s", dir)
	}

	registry, err := state.registry(flags.FactorsOverlay)
	if err != nil {
		return err
	}

	renderer, err := render.ForFormat(flags.Format, false)
	if err != nil {
		return err
	}

	if err := ensureDir(flags.OutDir); err != nil {
		return err
	}

	asOf := resolveAsOf(flags.AsOf)

	processor := batch.NewProcessor(flags.Concurrency).
		WithProgressCallback(func(done, total int) {
			state.logger.Info().Int("done", done).Int("total", total).Msg("pack generated")
		})

	err = processor.Run(ctx, paths, func(ctx context.Context, path string) error {
		sub, err := submission.Load(path)
		if err != nil {
			return err
		}
		if err := sub.Validate(); err != nil {
			return fmt.Errorf("invalid submission: %w", err)
		}

		doc := buildDocument(ctx, sub, registry, asOf)
		out := filepath.Join(flags.OutDir, packName(path, flags.Format))
		return writeDocument(doc, renderer, out, nil)
	})
	if err != nil {
		return err
	}

	cmd.Printf("Generated %d packs in %s\n", len(paths), flags.OutDir)
	return nil
}

// submissionPaths lists the YAML submission files in dir, sorted by glob
// order.
func submissionPaths(dir string) ([]string, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("listing submissions: %w", err)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

// ensureDir creates the output directory if needed.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}

// packName derives the output file name from the submission file name.
func packName(submissionPath, format string) string {
	base := strings.TrimSuffix(filepath.Base(submissionPath), filepath.Ext(submissionPath))
	ext := map[string]string{
		render.FormatPDF:  ".pdf",
		render.FormatText: ".txt",
		render.FormatJSON: ".json",
	}[format]
	return base + "_carbon_pack" + ext
}
