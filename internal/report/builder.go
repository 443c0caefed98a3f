package report

import (
	"fmt"

	"github.com/carbonops/carbonpack/internal/engine"
	"github.com/carbonops/carbonpack/internal/format"
)

// Metadata is the submission metadata echoed into the document. Business
// validation (non-empty signer, positive revenue where required) is the
// caller's responsibility, performed before Build.
type Metadata struct {
	CompanyName string
	Country     string
	Period      string
	Revenue     float64
	Currency    string
	SignerName  string

	// EvidenceFiles are the names of attached evidence files. Only names
	// and count are consumed, never contents.
	EvidenceFiles []string

	// AsOfDate is the caller-supplied generation date string. Build never
	// reads the wall clock.
	AsOfDate string

	// Reference is the submission reference echoed into the footer.
	// Optional.
	Reference string
}

// BoundaryItem is one activity category of the configured disclosure
// boundary: the factor key, its display label, and its evidence category.
// The full boundary list drives the evidence checklist and the exclusion
// disclosure.
type BoundaryItem struct {
	Key      string
	Label    string
	Evidence string
}

// Fixed disclosure text.
const (
	documentTitle = "CORPORATE CARBON FOOTPRINT DECLARATION"

	methodologyStatement = "Methodology Aligned with GHG Protocol & ISO 14064-1"

	boundaryStatement = "This report covers Scope 1 (Direct), Scope 2 (Energy Indirect), and " +
		"selected Scope 3 (Grey Fleet / Business Travel). Excludes upstream/downstream " +
		"Scope 3 categories unless noted. Calculations use ADEME Base Carbone emission factors."

	footerText = "Generated by Carbon Pack - Methodology Aligned with GHG Protocol"

	noEvidenceNotice    = "Self-Declaration (No supporting evidence attached)."
	noMaterialEmissions = "No material emissions reported."
	noExclusionsNotice  = "No standard boundary categories were excluded: every category has reported activity."
)

// Summary table row labels.
const (
	summaryScope1Label = "Scope 1 (Direct Emissions)"
	summaryScope2Label = "Scope 2 (Indirect Energy)"
	summaryScope3Label = "Scope 3 (Grey Fleet)"
	summaryTotalLabel  = "TOTAL FOOTPRINT"
	intensityLabel     = "CARBON INTENSITY"
)

// Build constructs the disclosure document from calculator output and
// submission metadata.
//
// Construction is pure: no I/O, no randomness, no clock reads. The boundary
// list supplies the "all standard categories" reference set; the active-key
// set derived from lines drives both the evidence checklist and the
// exclusion disclosure, so the two sections always agree.
func Build(meta Metadata, lines []engine.Line, totals engine.Totals, boundary []BoundaryItem) Document {
	active := engine.ActiveKeys(lines)

	doc := Document{
		Title: fmt.Sprintf("Carbon Footprint - %s", meta.CompanyName),
		Footer: Footer{
			Text:            footerReference(meta.Reference),
			RepeatEveryPage: true,
		},
	}

	doc.Sections = append(doc.Sections,
		headerSection(meta),
		companySection(meta),
		boundarySection(),
		summarySection(meta, totals),
	)

	if detail := detailSection(lines); detail != nil {
		doc.Sections = append(doc.Sections, *detail)
	}

	doc.Sections = append(doc.Sections,
		evidenceSection(meta, active, boundary),
		attestationSection(meta),
		exclusionSection(active, boundary),
	)

	return doc
}

func footerReference(reference string) string {
	if reference == "" {
		return footerText
	}
	return footerText + " - Ref " + reference
}

func headerSection(meta Metadata) Section {
	return Section{
		Kind:    SectionHeader,
		Heading: documentTitle,
		Paragraphs: []Paragraph{
			Text(methodologyStatement),
			Text("Date: " + meta.AsOfDate),
		},
	}
}

func companySection(meta Metadata) Section {
	paragraphs := []Paragraph{
		Spans(Span{Text: "Company Name: ", Bold: true}, Span{Text: meta.CompanyName}),
		Spans(Span{Text: "Site Country: ", Bold: true}, Span{Text: meta.Country}),
		Spans(Span{Text: "Reporting Period: ", Bold: true}, Span{Text: meta.Period}),
	}
	if meta.Revenue > 0 {
		revenue := format.Amount(meta.Revenue) + " " + meta.Currency
		paragraphs = append(paragraphs,
			Spans(Span{Text: "Annual Revenue: ", Bold: true}, Span{Text: revenue}))
	}
	return Section{Kind: SectionCompany, Paragraphs: paragraphs}
}

func boundarySection() Section {
	return Section{
		Kind:       SectionBoundary,
		Heading:    "BOUNDARY STATEMENT",
		Paragraphs: []Paragraph{Text(boundaryStatement)},
	}
}

// summarySection builds the per-scope summary table. The intensity row is
// always present; its value is exactly 0 when revenue is zero or unknown.
func summarySection(meta Metadata, totals engine.Totals) Section {
	kg := func(v float64) string { return format.Amount(v) + " kgCO2e" }
	intensity := engine.Intensity(totals.Total, meta.Revenue)

	currency := meta.Currency
	if currency == "" {
		currency = "revenue unit"
	}

	table := &Table{
		Columns: []Column{
			{Title: "METRIC", Align: AlignLeft, Width: 250},
			{Title: "VALUE", Align: AlignRight, Width: 150},
		},
		Rows: []Row{
			{Cells: []string{summaryScope1Label, kg(totals.Scope("Scope 1"))}, Style: RowNormal},
			{Cells: []string{summaryScope2Label, kg(totals.Scope("Scope 2"))}, Style: RowNormal},
			{Cells: []string{summaryScope3Label, kg(totals.Scope("Scope 3"))}, Style: RowNormal},
			{Cells: []string{summaryTotalLabel, kg(totals.Total)}, Style: RowTotal},
			{Cells: []string{intensityLabel, format.Intensity(intensity) + " kgCO2e / " + currency}, Style: RowAccent},
		},
	}

	return Section{Kind: SectionSummary, Heading: "EMISSIONS SUMMARY", Table: table}
}

// detailSection builds the line-item table in calculator order.
// Returns nil when there are no lines.
func detailSection(lines []engine.Line) *Section {
	if len(lines) == 0 {
		return nil
	}

	table := &Table{
		Columns: []Column{
			{Title: "Scope", Align: AlignLeft, Width: 60},
			{Title: "Activity", Align: AlignLeft, Width: 140},
			{Title: "Qty", Align: AlignLeft, Width: 80},
			{Title: "Emissions (kg)", Align: AlignRight, Width: 100},
		},
	}
	for _, line := range lines {
		table.Rows = append(table.Rows, Row{
			Cells: []string{
				line.Scope,
				line.ActivityLabel,
				format.Amount(line.Quantity) + " " + line.Unit,
				format.Amount(line.EmissionsKgCO2e),
			},
			Style: RowNormal,
		})
	}

	return &Section{Kind: SectionDetail, Heading: "Detailed Breakdown", Table: table}
}

// evidenceSection derives the evidence checklist from the factor keys
// actually used, deduplicated in first-use order, and appends the attachment
// count.
func evidenceSection(meta Metadata, active []string, boundary []BoundaryItem) Section {
	section := Section{Kind: SectionEvidence, Heading: "Evidence & Assurance"}

	if len(active) == 0 {
		section.Paragraphs = append(section.Paragraphs, Text(noMaterialEmissions))
	} else {
		section.Paragraphs = append(section.Paragraphs, Text("Expected supporting evidence:"))
		for _, category := range evidenceCategories(active, boundary) {
			section.Paragraphs = append(section.Paragraphs, Text("- "+category))
		}
	}

	if n := len(meta.EvidenceFiles); n > 0 {
		section.Paragraphs = append(section.Paragraphs,
			Text(fmt.Sprintf("Self-declared by supplier. Evidence attached: %d file(s).", n)))
	} else {
		section.Paragraphs = append(section.Paragraphs, Text(noEvidenceNotice))
	}

	return section
}

// evidenceCategories maps active factor keys to their evidence categories,
// deduplicated in first-use order. Keys outside the boundary list (custom
// overlay factors) contribute a generic record category.
func evidenceCategories(active []string, boundary []BoundaryItem) []string {
	byKey := make(map[string]string, len(boundary))
	for _, item := range boundary {
		byKey[item.Key] = item.Evidence
	}

	seen := make(map[string]bool)
	var categories []string
	for _, key := range active {
		category, ok := byKey[key]
		if !ok {
			category = "Activity records (" + key + ")"
		}
		if !seen[category] {
			seen[category] = true
			categories = append(categories, category)
		}
	}
	return categories
}

func attestationSection(meta Metadata) Section {
	return Section{
		Kind:    SectionAttestation,
		Heading: "ATTESTATION",
		Paragraphs: []Paragraph{
			Spans(
				Span{Text: "I, "},
				Span{Text: meta.SignerName, Bold: true},
				Span{Text: ", certify that the activity data and revenue provided are accurate to the best of my knowledge."},
			),
			Text("__________________________"),
			Text("Authorized Signature"),
		},
	}
}

// exclusionSection lists the boundary categories with no reported activity.
// It is the set complement of the evidence checklist over the same
// active-key set. Zero-quantity and never-reported categories are disclosed
// identically: neither carries reported activity.
func exclusionSection(active []string, boundary []BoundaryItem) Section {
	activeSet := make(map[string]bool, len(active))
	for _, key := range active {
		activeSet[key] = true
	}

	var excluded []string
	for _, item := range boundary {
		if !activeSet[item.Key] {
			excluded = append(excluded, item.Label)
		}
	}

	section := Section{Kind: SectionExclusions, Heading: "Exclusions"}
	if len(excluded) == 0 {
		section.Paragraphs = append(section.Paragraphs, Text(noExclusionsNotice))
		return section
	}

	section.Paragraphs = append(section.Paragraphs,
		Text("The following standard categories are excluded due to zero reported activity:"))
	for _, label := range excluded {
		section.Paragraphs = append(section.Paragraphs, Text("- "+label))
	}
	return section
}
