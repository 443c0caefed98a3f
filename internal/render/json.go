package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/carbonops/carbonpack/internal/report"
)

// JSONRenderer serializes the document model for machine consumers.
// Section and row order is preserved exactly as built.
type JSONRenderer struct{}

// Render writes the document as indented JSON.
func (r *JSONRenderer) Render(w io.Writer, doc report.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}
