package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/heurisko/internal/search"
)

// newPDF lays out one block per result: a bold heading with the transcript
// id and time span, then the words with matched ones in bold.
func newPDF(title string, results []search.QueryResult) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	for _, r := range results {
		heading := r.TranscriptID
		if start, end, ok := r.Span(); ok {
			heading = fmt.Sprintf("%s (%s..%s)", r.TranscriptID, seconds(start), seconds(end))
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, tr(heading), "", 1, "L", false, 0, "")
		for i, w := range r.Words {
			style := ""
			if w.Matched {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, 11)
			text := w.Text
			if i < len(r.Words)-1 {
				text += " "
			}
			pdf.Write(5, tr(text))
		}
		pdf.Ln(8)
	}
	return pdf
}

// PDF writes results as a PDF document to w.
func PDF(w io.Writer, title string, results []search.QueryResult) error {
	return newPDF(title, results).Output(w)
}

// PDFFile writes results as a PDF document at path.
func PDFFile(path, title string, results []search.QueryResult) error {
	return newPDF(title, results).OutputFileAndClose(path)
}
