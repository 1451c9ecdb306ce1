package infra

// pdf.go — employment contract PDF generation using go-pdf/fpdf.
// Output is saved to storagePath/contract_{id}.pdf and returned for download
// or email attachment.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dsaslb/restaurant-management-system/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateContractPDF renders a one-page A4 employment contract.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateContractPDF(c *model.Contract, storeName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("contract_%s.pdf", c.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 40

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, "Employment Contract", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, storeName, "", 1, "C", false, 0, "")
	pdf.Ln(8)

	// ── Parties and terms ────────────────────────────────────────────────────
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 8, label, "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW-45, 8, value, "B", 1, "L", false, 0, "")
	}

	row("Employee", c.Name)
	row("Employee ID", c.EmployeeID)
	row("Store", c.Store)
	row("Position", c.Position)
	row("Hourly wage", c.HourlyWage.StringFixed(2))
	row("Start date", c.StartDate.Format("2006-01-02"))
	row("End date", c.EndDate.Format("2006-01-02"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(contentW, 5,
		"The employee agrees to perform the duties of the position listed above "+
			"at the listed store. Wages are computed from recorded attendance at the "+
			"hourly rate stated in this contract and paid monthly. Either party may "+
			"terminate this contract with 30 days written notice.",
		"", "L", false)
	pdf.Ln(16)

	// ── Signature lines ──────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	half := contentW / 2
	pdf.CellFormat(half, 8, "Employer signature: ____________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 8, "Employee signature: ____________________", "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.CellFormat(contentW, 6, "Generated "+c.UpdatedAt.Format("2006-01-02"), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
