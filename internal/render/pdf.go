package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/carbonops/carbonpack/internal/report"
)

// Page geometry and typography for the A4 rendition.
const (
	pdfMarginLeft   = 15.0
	pdfMarginTop    = 12.0
	pdfMarginBottom = 18.0
	pdfUsableWidth  = 180.0 // A4 width (210mm) minus both margins

	pdfLineHeight    = 5.0
	pdfRowHeight     = 7.0
	pdfTitleSize     = 16.0
	pdfHeadingSize   = 11.0
	pdfBodySize      = 9.5
	pdfFooterSize    = 8.0
	pdfSectionGap    = 6.0
	pdfFooterYOffset = -12.0
)

// PDFRenderer materializes the document as a paginated A4 PDF. The footer
// block marked RepeatEveryPage is drawn on every page through the document's
// footer hook.
type PDFRenderer struct{}

// Render writes the document as PDF bytes.
func (r *PDFRenderer) Render(w io.Writer, doc report.Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginLeft)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)

	if doc.Footer.RepeatEveryPage {
		pdf.SetFooterFunc(func() {
			pdf.SetY(pdfFooterYOffset)
			pdf.SetFont("Helvetica", "", pdfFooterSize)
			pdf.SetTextColor(128, 128, 128)
			pdf.CellFormat(0, pdfLineHeight, doc.Footer.Text, "", 0, "C", false, 0, "")
		})
	}

	pdf.AddPage()

	for _, section := range doc.Sections {
		writeSection(pdf, section)
	}

	if !doc.Footer.RepeatEveryPage {
		pdf.Ln(pdfSectionGap)
		pdf.SetFont("Helvetica", "", pdfFooterSize)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, pdfLineHeight, doc.Footer.Text, "", 1, "C", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func writeSection(pdf *gofpdf.Fpdf, section report.Section) {
	if section.Heading != "" {
		if section.Kind == report.SectionHeader {
			pdf.SetFont("Helvetica", "B", pdfTitleSize)
			pdf.SetTextColor(0, 0, 0)
			pdf.CellFormat(0, 10, section.Heading, "", 1, "C", false, 0, "")
		} else {
			pdf.SetFont("Helvetica", "B", pdfHeadingSize)
			pdf.SetTextColor(0, 0, 0)
			pdf.CellFormat(0, 8, section.Heading, "", 1, "L", false, 0, "")
		}
	}

	for _, paragraph := range section.Paragraphs {
		writeParagraph(pdf, paragraph)
	}

	if section.Table != nil {
		writeTable(pdf, section.Table)
	}

	pdf.Ln(pdfSectionGap)
}

// writeParagraph writes spans with inline bold/italic emphasis on one
// flowing line, then breaks.
func writeParagraph(pdf *gofpdf.Fpdf, paragraph report.Paragraph) {
	pdf.SetTextColor(0, 0, 0)
	for _, span := range paragraph.Spans {
		style := ""
		if span.Bold {
			style += "B"
		}
		if span.Italic {
			style += "I"
		}
		pdf.SetFont("Helvetica", style, pdfBodySize)
		pdf.Write(pdfLineHeight, span.Text)
	}
	pdf.Ln(pdfLineHeight)
}

func writeTable(pdf *gofpdf.Fpdf, table *report.Table) {
	widths := columnWidths(table.Columns)

	// Header row: navy fill, white bold text.
	pdf.SetFont("Helvetica", "B", pdfBodySize)
	pdf.SetFillColor(0, 0, 128)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(128, 128, 128)
	for i, col := range table.Columns {
		pdf.CellFormat(widths[i], pdfRowHeight, col.Title, "1", 0, cellAlign(col.Align), true, 0, "")
	}
	pdf.Ln(pdfRowHeight)

	for rowIndex, row := range table.Rows {
		applyRowStyle(pdf, row.Style, rowIndex)
		for i, cell := range row.Cells {
			align := "L"
			if i < len(table.Columns) {
				align = cellAlign(table.Columns[i].Align)
			}
			width := pdfUsableWidth / float64(len(row.Cells))
			if i < len(widths) {
				width = widths[i]
			}
			pdf.CellFormat(width, pdfRowHeight, cell, "1", 0, align, true, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}
}

// applyRowStyle sets fill, text color, and font for one body row. Normal
// rows alternate whitesmoke and white.
func applyRowStyle(pdf *gofpdf.Fpdf, style report.RowStyle, rowIndex int) {
	switch style {
	case report.RowTotal:
		pdf.SetFillColor(0, 0, 128)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", pdfBodySize)
	case report.RowAccent:
		pdf.SetFillColor(240, 248, 255)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "I", pdfBodySize)
	case report.RowNormal:
		if rowIndex%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", pdfBodySize)
	default:
		pdf.SetFillColor(255, 255, 255)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", pdfBodySize)
	}
}

// columnWidths scales the builder's relative width hints to the usable page
// width. Columns without hints share the width evenly.
func columnWidths(columns []report.Column) []float64 {
	widths := make([]float64, len(columns))
	total := 0
	for _, col := range columns {
		total += col.Width
	}
	if total == 0 {
		for i := range widths {
			widths[i] = pdfUsableWidth / float64(len(columns))
		}
		return widths
	}
	for i, col := range columns {
		widths[i] = pdfUsableWidth * float64(col.Width) / float64(total)
	}
	return widths
}

func cellAlign(a report.Alignment) string {
	if a == report.AlignRight {
		return "R"
	}
	return "L"
}
