package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/carbonops/carbonpack/internal/activity"
	"github.com/carbonops/carbonpack/internal/engine"
	"github.com/carbonops/carbonpack/internal/factors"
	"github.com/carbonops/carbonpack/internal/logging"
	"github.com/carbonops/carbonpack/internal/render"
	"github.com/carbonops/carbonpack/internal/report"
	"github.com/carbonops/carbonpack/internal/submission"
)

// asOfDateLayout is the display layout for the generation date.
const asOfDateLayout = "02 Jan 2006"

// boundaryItems derives the disclosure boundary from the activity catalogue.
// This is the "all standard categories" reference set for the evidence and
// exclusion sections.
func boundaryItems() []report.BoundaryItem {
	catalogue := activity.Catalogue()
	items := make([]report.BoundaryItem, len(catalogue))
	for i, def := range catalogue {
		items[i] = report.BoundaryItem{
			Key:      def.Key,
			Label:    def.Label,
			Evidence: def.Evidence,
		}
	}
	return items
}

// buildDocument runs the full pipeline for one validated submission:
// entries -> lines -> totals -> document.
func buildDocument(
	ctx context.Context,
	sub *submission.Submission,
	registry *factors.Registry,
	asOf string,
) report.Document {
	log := logging.FromContext(ctx)

	lines := engine.Calculate(ctx, sub.Entries(), registry)
	totals := engine.Summarize(lines)

	log.Info().
		Str("company", sub.Company.Name).
		Str("reference", sub.Reference).
		Int("line_count", len(lines)).
		Float64("total_kg_co2e", totals.Total).
		Msg("emissions calculated")

	meta := report.Metadata{
		CompanyName:   sub.Company.Name,
		Country:       sub.Company.Country,
		Period:        sub.Company.Period,
		Revenue:       sub.Company.Revenue,
		Currency:      sub.Company.Currency,
		SignerName:    sub.Signer,
		EvidenceFiles: sub.EvidenceFiles,
		AsOfDate:      asOf,
		Reference:     sub.Reference,
	}

	return report.Build(meta, lines, totals, boundaryItems())
}

// resolveAsOf returns the flag value or today's date. The builder itself
// never reads the clock; the CLI is the caller that supplies "now".
func resolveAsOf(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return time.Now().Format(asOfDateLayout)
}

// writeDocument renders doc to the named file, or to fallback (stdout) when
// out is empty.
func writeDocument(doc report.Document, renderer render.Renderer, out string, fallback io.Writer) error {
	if out == "" {
		return renderer.Render(fallback, doc)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := renderer.Render(f, doc); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
