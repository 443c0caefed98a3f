// Package engine converts raw activity entries into emission line items and
// scope totals using an emission factor registry.
//
// Every operation is a pure function over in-memory values: no I/O, no
// wall-clock reads, no shared mutable state. Re-invocation with the same
// input always yields the same output.
package engine

import (
	"context"
	"math"
	"strings"

	"github.com/carbonops/carbonpack/internal/activity"
	"github.com/carbonops/carbonpack/internal/factors"
	"github.com/carbonops/carbonpack/internal/logging"
)

// Line is one calculated, disclosable emission row. Lines exist only for
// entries that reported a positive quantity and resolved a factor, one per
// surviving entry, and are immutable after creation.
type Line struct {
	// Scope is the accounting scope label extracted from the category.
	Scope string `json:"scope"`

	// Category is the entry's full category string.
	Category string `json:"category"`

	// ActivityLabel is the display name of the activity.
	ActivityLabel string `json:"activity"`

	// Quantity is the reported physical quantity.
	Quantity float64 `json:"quantity"`

	// Unit is the reported quantity's display unit.
	Unit string `json:"unit"`

	// FactorKey is the emission factor key that produced this line.
	FactorKey string `json:"factor_key"`

	// FactorRef is the human-readable factor reference, "<value> (<unit>)".
	FactorRef string `json:"factor_ref"`

	// EmissionsKgCO2e is quantity multiplied by the factor value.
	EmissionsKgCO2e float64 `json:"emissions_kg_co2e"`

	// SourceRef is the factor provenance, "<source> [<id>]".
	SourceRef string `json:"source_ref"`
}

// scopeSeparator splits a category into its scope label and group.
const scopeSeparator = " - "

// ExtractScope returns the scope label for a category string: the token
// before the first " - ", or the whole category when no separator exists.
// Built-in catalogue entries always carry the separator; the fallback only
// applies to free-form overlay entries.
func ExtractScope(category string) string {
	scope, _, found := strings.Cut(category, scopeSeparator)
	if !found {
		return category
	}
	return scope
}

// Calculate converts entries into emission lines, in input order.
//
// Entries are dropped silently when the quantity is not positive (treated as
// "not reported") or when the factor key does not resolve: partially
// configured factor tables degrade gracefully instead of failing the whole
// submission. Non-finite quantities are dropped the same way. Dropped
// entries are logged at debug level only.
func Calculate(ctx context.Context, entries []activity.Entry, registry *factors.Registry) []Line {
	log := logging.FromContext(ctx)
	lines := make([]Line, 0, len(entries))

	for _, entry := range entries {
		if entry.Quantity <= 0 || math.IsInf(entry.Quantity, 0) || math.IsNaN(entry.Quantity) {
			log.Debug().
				Str("component", "engine").
				Str("factor_key", entry.FactorKey).
				Float64("quantity", entry.Quantity).
				Msg("skipping entry without reported quantity")
			continue
		}

		factor, ok := registry.Lookup(entry.FactorKey)
		if !ok {
			log.Debug().
				Str("component", "engine").
				Str("factor_key", entry.FactorKey).
				Msg("skipping entry with unresolved factor key")
			continue
		}

		lines = append(lines, Line{
			Scope:           ExtractScope(entry.Category),
			Category:        entry.Category,
			ActivityLabel:   entry.Label,
			Quantity:        entry.Quantity,
			Unit:            entry.Unit,
			FactorKey:       entry.FactorKey,
			FactorRef:       factor.Reference(),
			EmissionsKgCO2e: entry.Quantity * factor.ValuePerUnit,
			SourceRef:       factor.SourceReference(),
		})
	}

	return lines
}

// ActiveKeys returns the deduplicated factor keys behind lines, in first-use
// order. The evidence checklist and the exclusion disclosure both derive
// from this set so the two sections cannot disagree.
func ActiveKeys(lines []Line) []string {
	seen := make(map[string]bool, len(lines))
	keys := make([]string, 0, len(lines))
	for _, line := range lines {
		if !seen[line.FactorKey] {
			seen[line.FactorKey] = true
			keys = append(keys, line.FactorKey)
		}
	}
	return keys
}
