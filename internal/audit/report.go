package audit

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// BuildTrailReport renders the audit trail of a document as a PDF table.
func BuildTrailReport(documentName string, entries []Entry) (io.Reader, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Audit Trail")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Document: %s", documentName))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format(time.RFC1123)))
	pdf.Ln(12)

	// Header row
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(55, 8, "Time", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Action", "1", 0, "L", true, 0, "")
	pdf.CellFormat(55, 8, "User", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "IP", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, e := range entries {
		user := "anonymous"
		if e.UserID != nil {
			user = e.UserID.String()
		}
		pdf.CellFormat(55, 7, e.CreatedAt.Format("2006-01-02 15:04:05"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, e.Action, "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, user, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, e.IP, "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render audit report: %w", err)
	}
	return &buf, nil
}
