// Package render materializes the disclosure document model into bytes.
//
// Three renderers cover the supported outputs: paginated PDF, styled or
// plain terminal text, and JSON. Renderers consume the document model only;
// they never reach back into the calculator or the builder.
package render

import (
	"fmt"
	"io"

	"github.com/carbonops/carbonpack/internal/report"
)

// Renderer writes a disclosure document to w in one concrete format.
type Renderer interface {
	Render(w io.Writer, doc report.Document) error
}

// Supported output format names.
const (
	FormatPDF  = "pdf"
	FormatText = "text"
	FormatJSON = "json"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownFormat indicates an unrecognized output format name.
var ErrUnknownFormat = constError("unknown output format")

// ForFormat returns the renderer for a format name. The styled flag selects
// ANSI-styled terminal output for the text format; PDF and JSON ignore it.
func ForFormat(name string, styled bool) (Renderer, error) {
	switch name {
	case FormatPDF:
		return &PDFRenderer{}, nil
	case FormatText:
		return &TextRenderer{Styled: styled}, nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want pdf, text, or json)", ErrUnknownFormat, name)
	}
}
