package report_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonops/carbonpack/internal/activity"
	"github.com/carbonops/carbonpack/internal/engine"
	"github.com/carbonops/carbonpack/internal/factors"
	"github.com/carbonops/carbonpack/internal/report"
)

func testBoundary() []report.BoundaryItem {
	catalogue := activity.Catalogue()
	items := make([]report.BoundaryItem, len(catalogue))
	for i, def := range catalogue {
		items[i] = report.BoundaryItem{Key: def.Key, Label: def.Label, Evidence: def.Evidence}
	}
	return items
}

func testMetadata() report.Metadata {
	return report.Metadata{
		CompanyName: "ACME SARL",
		Country:     "France",
		Period:      "2025",
		Revenue:     100000,
		Currency:    "EUR",
		SignerName:  "Jean Dupont",
		AsOfDate:    "15 Mar 2026",
		Reference:   "01JFBXV0TEST",
	}
}

func calculateLines(t *testing.T, entries ...activity.Entry) ([]engine.Line, engine.Totals) {
	t.Helper()
	lines := engine.Calculate(context.Background(), entries, factors.Builtin())
	return lines, engine.Summarize(lines)
}

func findSection(t *testing.T, doc report.Document, kind report.SectionKind) report.Section {
	t.Helper()
	for _, section := range doc.Sections {
		if section.Kind == kind {
			return section
		}
	}
	t.Fatalf("document has no %s section", kind)
	return report.Section{}
}

func hasSection(doc report.Document, kind report.SectionKind) bool {
	for _, section := range doc.Sections {
		if section.Kind == kind {
			return true
		}
	}
	return false
}

func sectionText(section report.Section) string {
	var b strings.Builder
	for _, paragraph := range section.Paragraphs {
		for _, span := range paragraph.Spans {
			b.WriteString(span.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func TestBuildIsDeterministic(t *testing.T) {
	lines, totals := calculateLines(t,
		activity.KindNaturalGas.Entry(100),
		activity.KindElectricity.Entry(1000),
	)
	meta := testMetadata()

	first := report.Build(meta, lines, totals, testBoundary())
	second := report.Build(meta, lines, totals, testBoundary())

	assert.Equal(t, first, second)
}

func TestBuildSectionOrder(t *testing.T) {
	lines, totals := calculateLines(t, activity.KindNaturalGas.Entry(100))
	doc := report.Build(testMetadata(), lines, totals, testBoundary())

	var kinds []report.SectionKind
	for _, section := range doc.Sections {
		kinds = append(kinds, section.Kind)
	}
	assert.Equal(t, []report.SectionKind{
		report.SectionHeader,
		report.SectionCompany,
		report.SectionBoundary,
		report.SectionSummary,
		report.SectionDetail,
		report.SectionEvidence,
		report.SectionAttestation,
		report.SectionExclusions,
	}, kinds)
}

func TestBuildHeaderAndCompany(t *testing.T) {
	lines, totals := calculateLines(t, activity.KindNaturalGas.Entry(100))
	doc := report.Build(testMetadata(), lines, totals, testBoundary())

	assert.Equal(t, "Carbon Footprint - ACME SARL", doc.Title)

	header := findSection(t, doc, report.SectionHeader)
	assert.Contains(t, sectionText(header), "Date: 15 Mar 2026")

	company := sectionText(findSection(t, doc, report.SectionCompany))
	assert.Contains(t, company, "ACME SARL")
	assert.Contains(t, company, "France")
	assert.Contains(t, company, "2025")
	assert.Contains(t, company, "100,000.00 EUR")
}

func TestBuildSummaryTable(t *testing.T) {
	lines, totals := calculateLines(t,
		activity.KindNaturalGas.Entry(100),   // Scope 1: 24.4
		activity.KindElectricity.Entry(1000), // Scope 2: 52.0
	)
	doc := report.Build(testMetadata(), lines, totals, testBoundary())

	summary := findSection(t, doc, report.SectionSummary)
	require.NotNil(t, summary.Table)
	require.Len(t, summary.Table.Rows, 5)

	rows := summary.Table.Rows
	assert.Equal(t, "24.40 kgCO2e", rows[0].Cells[1])
	assert.Equal(t, "52.00 kgCO2e", rows[1].Cells[1])
	assert.Equal(t, "0.00 kgCO2e", rows[2].Cells[1])
	assert.Equal(t, "76.40 kgCO2e", rows[3].Cells[1])
	assert.Equal(t, report.RowTotal, rows[3].Style)
	assert.Equal(t, report.RowAccent, rows[4].Style)
}

// Revenue 100000 with total 500 yields intensity 0.005.
func TestBuildCarbonIntensity(t *testing.T) {
	totals := engine.Totals{ByScope: map[string]float64{"Scope 1": 500}, Total: 500}
	doc := report.Build(testMetadata(), []engine.Line{{Scope: "Scope 1", FactorKey: "diesel"}}, totals, testBoundary())

	summary := findSection(t, doc, report.SectionSummary)
	intensityRow := summary.Table.Rows[4]
	assert.Contains(t, intensityRow.Cells[1], "0.0050")
	assert.Contains(t, intensityRow.Cells[1], "EUR")
}

// Zero revenue yields an intensity of exactly 0, never a fault.
func TestBuildZeroRevenueIntensity(t *testing.T) {
	meta := testMetadata()
	meta.Revenue = 0

	lines, totals := calculateLines(t, activity.KindNaturalGas.Entry(100))
	doc := report.Build(meta, lines, totals, testBoundary())

	summary := findSection(t, doc, report.SectionSummary)
	assert.True(t, strings.HasPrefix(summary.Table.Rows[4].Cells[1], "0.00 "), "intensity must be exactly 0")

	// Revenue line is omitted from the company block when unknown.
	company := sectionText(findSection(t, doc, report.SectionCompany))
	assert.NotContains(t, company, "Annual Revenue")
}

func TestBuildDetailTablePreservesOrder(t *testing.T) {
	lines, totals := calculateLines(t,
		activity.KindGreyFleet.Entry(500),
		activity.KindNaturalGas.Entry(100),
	)
	doc := report.Build(testMetadata(), lines, totals, testBoundary())

	detail := findSection(t, doc, report.SectionDetail)
	require.NotNil(t, detail.Table)
	require.Len(t, detail.Table.Rows, 2)
	assert.Equal(t, "Grey Fleet Travel", detail.Table.Rows[0].Cells[1])
	assert.Equal(t, "Natural Gas", detail.Table.Rows[1].Cells[1])
	assert.Equal(t, "500.00 km", detail.Table.Rows[0].Cells[2])
}

func TestBuildOmitsDetailTableWhenEmpty(t *testing.T) {
	doc := report.Build(testMetadata(), nil, engine.Summarize(nil), testBoundary())

	assert.False(t, hasSection(doc, report.SectionDetail))
}

func TestBuildEvidenceSection(t *testing.T) {
	tests := []struct {
		name          string
		entries       []activity.Entry
		evidenceFiles []string
		wantContains  []string
		notContains   []string
	}{
		{
			name:          "active key with no files",
			entries:       []activity.Entry{activity.KindFleetDiesel.Entry(200)},
			wantContains:  []string{"Fleet fuel receipts", "Self-Declaration (No supporting evidence attached)."},
			notContains:   []string{"Refrigerant maintenance logs"},
		},
		{
			name:          "attached files are counted",
			entries:       []activity.Entry{activity.KindFleetDiesel.Entry(200)},
			evidenceFiles: []string{"invoice.pdf", "receipts.zip"},
			wantContains:  []string{"Evidence attached: 2 file(s)."},
		},
		{
			name:         "no active keys",
			entries:      []activity.Entry{activity.KindFleetDiesel.Entry(0)},
			wantContains: []string{"No material emissions reported."},
			notContains:  []string{"Expected supporting evidence"},
		},
		{
			name: "shared evidence category deduplicated",
			entries: []activity.Entry{
				activity.KindNaturalGas.Entry(10),
				activity.KindHeatingOil.Entry(10),
			},
			wantContains: []string{"Fuel and energy invoices"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := testMetadata()
			meta.EvidenceFiles = tt.evidenceFiles

			lines, totals := calculateLines(t, tt.entries...)
			doc := report.Build(meta, lines, totals, testBoundary())

			text := sectionText(findSection(t, doc, report.SectionEvidence))
			for _, want := range tt.wantContains {
				assert.Contains(t, text, want)
			}
			for _, not := range tt.notContains {
				assert.NotContains(t, text, not)
			}

			if tt.name == "shared evidence category deduplicated" {
				assert.Equal(t, 1, strings.Count(text, "Fuel and energy invoices"))
			}
		})
	}
}

func TestBuildAttestationEmbedsSigner(t *testing.T) {
	lines, totals := calculateLines(t, activity.KindNaturalGas.Entry(100))
	doc := report.Build(testMetadata(), lines, totals, testBoundary())

	attestation := findSection(t, doc, report.SectionAttestation)
	text := sectionText(attestation)
	assert.Contains(t, text, "I, Jean Dupont, certify")

	// The signer name is a bold span.
	var signerBold bool
	for _, span := range attestation.Paragraphs[0].Spans {
		if span.Text == "Jean Dupont" && span.Bold {
			signerBold = true
		}
	}
	assert.True(t, signerBold)
}

func TestBuildExclusions(t *testing.T) {
	lines, totals := calculateLines(t, activity.KindFleetDiesel.Entry(200))
	doc := report.Build(testMetadata(), lines, totals, testBoundary())

	text := sectionText(findSection(t, doc, report.SectionExclusions))
	assert.Contains(t, text, "excluded due to zero reported activity")
	// Every boundary label except the active one is listed.
	for _, def := range activity.Catalogue() {
		if def.Key == "diesel" {
			assert.NotContains(t, text, "- "+def.Label+"\n")
			continue
		}
		assert.Contains(t, text, def.Label)
	}
}

func TestBuildNoExclusionsWhenAllActive(t *testing.T) {
	entries := make([]activity.Entry, 0, len(activity.Catalogue()))
	for _, def := range activity.Catalogue() {
		entries = append(entries, def.Kind.Entry(10))
	}

	lines, totals := calculateLines(t, entries...)
	doc := report.Build(testMetadata(), lines, totals, testBoundary())

	text := sectionText(findSection(t, doc, report.SectionExclusions))
	assert.Contains(t, text, "No standard boundary categories were excluded")
}

// The evidence checklist and the exclusion list must partition the boundary:
// every boundary key appears in exactly one of them.
func TestEvidenceAndExclusionsAreConsistent(t *testing.T) {
	lines, totals := calculateLines(t,
		activity.KindNaturalGas.Entry(100),
		activity.KindElectricity.Entry(1000),
		activity.KindFleetDiesel.Entry(0), // zero quantity: excluded like never-reported
	)
	doc := report.Build(testMetadata(), lines, totals, testBoundary())

	evidence := sectionText(findSection(t, doc, report.SectionEvidence))
	exclusions := sectionText(findSection(t, doc, report.SectionExclusions))

	active := map[string]bool{"natural_gas": true, "electricity_fr": true}
	for _, def := range activity.Catalogue() {
		if active[def.Key] {
			assert.Contains(t, evidence, def.Evidence, "active key %s must appear in evidence", def.Key)
			assert.NotContains(t, exclusions, def.Label)
		} else {
			assert.Contains(t, exclusions, def.Label, "inactive key %s must appear in exclusions", def.Key)
		}
	}
}

func TestBuildFooter(t *testing.T) {
	lines, totals := calculateLines(t, activity.KindNaturalGas.Entry(100))
	doc := report.Build(testMetadata(), lines, totals, testBoundary())

	assert.True(t, doc.Footer.RepeatEveryPage)
	assert.Contains(t, doc.Footer.Text, "GHG Protocol")
	assert.Contains(t, doc.Footer.Text, "01JFBXV0TEST")
}
