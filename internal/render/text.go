package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/carbonops/carbonpack/internal/report"
)

// tabwriterPadding is the minimum padding between columns in plain tables.
const tabwriterPadding = 2

// TextRenderer writes the document as terminal text. When Styled is set it
// uses Lip Gloss boxes and colors; otherwise it emits plain text suitable
// for pipes and files.
type TextRenderer struct {
	Styled bool
}

// Render writes the document to w.
func (r *TextRenderer) Render(w io.Writer, doc report.Document) error {
	if r.Styled {
		return renderStyledText(w, doc)
	}
	return renderPlainText(w, doc)
}

// renderPlainText writes an unstyled rendition: headings, paragraphs, and
// tabwriter tables, finishing with the footer once.
func renderPlainText(w io.Writer, doc report.Document) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", doc.Title, strings.Repeat("=", len(doc.Title))); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}

	for _, section := range doc.Sections {
		if section.Heading != "" {
			if _, err := fmt.Fprintf(w, "%s\n", section.Heading); err != nil {
				return fmt.Errorf("writing heading: %w", err)
			}
		}
		for _, paragraph := range section.Paragraphs {
			if _, err := fmt.Fprintf(w, "%s\n", paragraphText(paragraph)); err != nil {
				return fmt.Errorf("writing paragraph: %w", err)
			}
		}
		if section.Table != nil {
			if err := renderPlainTable(w, section.Table); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("writing section break: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w, "%s\n", doc.Footer.Text); err != nil {
		return fmt.Errorf("writing footer: %w", err)
	}
	return nil
}

func renderPlainTable(w io.Writer, table *report.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	titles := make([]string, len(table.Columns))
	rules := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		titles[i] = col.Title
		rules[i] = strings.Repeat("-", len(col.Title))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(titles, "\t")); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(rules, "\t")); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, row := range table.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row.Cells, "\t")); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

// Styles for the terminal rendition.
//
//nolint:gochecknoglobals // Lip Gloss styles are conventionally package-level.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("17")).Padding(0, 2)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	totalStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("17"))
	accentStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("14"))
	footerStyle  = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	italicStyle  = lipgloss.NewStyle().Italic(true)
)

// renderStyledText writes a Lip Gloss styled rendition for interactive
// terminals.
func renderStyledText(w io.Writer, doc report.Document) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(doc.Title))
	b.WriteString("\n\n")

	for _, section := range doc.Sections {
		if section.Heading != "" {
			b.WriteString(headingStyle.Render(section.Heading))
			b.WriteString("\n")
		}
		for _, paragraph := range section.Paragraphs {
			b.WriteString(styledParagraph(paragraph))
			b.WriteString("\n")
		}
		if section.Table != nil {
			renderStyledTable(&b, section.Table)
		}
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render(doc.Footer.Text))
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing styled document: %w", err)
	}
	return nil
}

func renderStyledTable(b *strings.Builder, table *report.Table) {
	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = len(col.Title)
	}
	for _, row := range table.Rows {
		for i, cell := range row.Cells {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	pad := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			if i < len(widths) {
				parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
			} else {
				parts[i] = cell
			}
		}
		return strings.Join(parts, "  ")
	}

	titles := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		titles[i] = col.Title
	}
	b.WriteString(boldStyle.Render(pad(titles)))
	b.WriteString("\n")

	for _, row := range table.Rows {
		line := pad(row.Cells)
		switch row.Style {
		case report.RowTotal:
			line = totalStyle.Render(line)
		case report.RowAccent:
			line = accentStyle.Render(line)
		case report.RowNormal:
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

// paragraphText flattens a paragraph's spans to plain text.
func paragraphText(paragraph report.Paragraph) string {
	var b strings.Builder
	for _, span := range paragraph.Spans {
		b.WriteString(span.Text)
	}
	return b.String()
}

// styledParagraph applies inline emphasis per span.
func styledParagraph(paragraph report.Paragraph) string {
	var b strings.Builder
	for _, span := range paragraph.Spans {
		switch {
		case span.Bold:
			b.WriteString(boldStyle.Render(span.Text))
		case span.Italic:
			b.WriteString(italicStyle.Render(span.Text))
		default:
			b.WriteString(span.Text)
		}
	}
	return b.String()
}
