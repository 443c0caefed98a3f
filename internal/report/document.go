// Package report builds the disclosure document model: an ordered tree of
// sections, tables, and paragraphs describing a supplier's carbon pack.
//
// The builder is deterministic and pure. The generation date, the submission
// reference, and every display string are inputs; the same inputs always
// produce the same document. Rendering the model into bytes is a separate
// concern handled by the render package.
package report

// Document is the structured disclosure handed to a renderer.
// It is immutable once built.
type Document struct {
	// Title is the document title, also used for file metadata.
	Title string `json:"title"`

	// Sections are the document body, in reading order.
	Sections []Section `json:"sections"`

	// Footer is the attribution block renderers must repeat on every page.
	Footer Footer `json:"footer"`
}

// Footer is a static text block with a repeat-on-every-page marker.
type Footer struct {
	Text            string `json:"text"`
	RepeatEveryPage bool   `json:"repeat_every_page"`
}

// SectionKind identifies a section's role so renderers can vary layout
// without parsing headings.
type SectionKind string

// Section kinds, in the order Build emits them.
const (
	SectionHeader      SectionKind = "header"
	SectionCompany     SectionKind = "company"
	SectionBoundary    SectionKind = "boundary"
	SectionSummary     SectionKind = "summary"
	SectionDetail      SectionKind = "detail"
	SectionEvidence    SectionKind = "evidence"
	SectionAttestation SectionKind = "attestation"
	SectionExclusions  SectionKind = "exclusions"
)

// Section is one titled block of the document: paragraphs, an optional
// table, or both.
type Section struct {
	Kind       SectionKind `json:"kind"`
	Heading    string      `json:"heading,omitempty"`
	Paragraphs []Paragraph `json:"paragraphs,omitempty"`
	Table      *Table      `json:"table,omitempty"`
}

// Paragraph is a run of styled spans rendered as one block of text.
type Paragraph struct {
	Spans []Span `json:"spans"`
}

// Span is a piece of paragraph text with inline emphasis.
type Span struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
}

// Text builds a paragraph from a single plain span.
func Text(s string) Paragraph {
	return Paragraph{Spans: []Span{{Text: s}}}
}

// Spans builds a paragraph from the given spans.
func Spans(spans ...Span) Paragraph {
	return Paragraph{Spans: spans}
}

// Alignment positions cell content within a column.
type Alignment string

// Cell alignments.
const (
	AlignLeft  Alignment = "left"
	AlignRight Alignment = "right"
)

// RowStyle selects a table row's visual treatment.
type RowStyle string

// Row styles. Normal rows alternate backgrounds at the renderer's
// discretion; total rows are emphasized; accent rows are secondary metrics
// such as carbon intensity.
const (
	RowNormal RowStyle = "normal"
	RowTotal  RowStyle = "total"
	RowAccent RowStyle = "accent"
)

// Table is a simple columnar table with per-row styling.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Column describes one table column.
type Column struct {
	Title string    `json:"title"`
	Align Alignment `json:"align"`
	// Width is a relative width hint for paginated renderers.
	Width int `json:"width,omitempty"`
}

// Row is one table row.
type Row struct {
	Cells []string `json:"cells"`
	Style RowStyle `json:"style"`
}
