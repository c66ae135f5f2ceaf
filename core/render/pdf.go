// PDF renderer.
// Writes an extraction report with gofpdf: a header describing the query and
// source, then every match in a monospace block.

package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/tenqz/tagparser/core"
)

// PDFRenderer renders a Result as a PDF report.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts res into PDF bytes.
func (r *PDFRenderer) Render(res core.Result) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr(title(res)), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr("Source: "+res.Source), "", "L", false)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Extracted: %s, %d match(es)", res.ExtractedAt, len(res.Matches))), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for i, m := range res.Matches {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, fmt.Sprintf("Match %d", i+1), "", "L", false)

		pdf.SetFont("Courier", "", 9)
		pdf.SetFillColor(245, 245, 245)
		pdf.MultiCell(0, 4.5, tr(m), "", "L", true)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// Binary reports that PDF output must not be written to a terminal.
func (r *PDFRenderer) Binary() bool {
	return true
}
