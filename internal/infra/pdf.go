package infra

// pdf.go — Printable invoice generation using go-pdf/fpdf.
// Generates an A4 document with:
//   - Trader header (business name + fiscal registration fields)
//   - Invoice number, date, payment method
//   - Customer block
//   - Line table (code, name, qty, unit price, subtotal, VAT, total)
//   - Totals with the cash stamp-duty line when applicable
//   - Amount-in-words footer
//
// The output file is saved to storagePath/invoice_{number}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"fatoora/internal/dto"
	"fatoora/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateInvoicePDF renders the reconstructed invoice view to a PDF file.
// storagePath is created if needed. Returns the file name relative to
// storagePath, which is what InvoiceDocument.PDFPath stores.
func GenerateInvoicePDF(view *dto.InvoiceView, trader *model.TraderInfo, amountWords, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%d.pdf", view.Number)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Trader header ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 8, trader.BusinessName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range fiscalLines(trader) {
		pdf.CellFormat(contentW, 5, line, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	// ── Invoice info ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, fmt.Sprintf("Invoice No %d", view.Number), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Date: "+view.IssueDate, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Payment: "+view.PaymentMethod, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Customer block ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, "Billed to: "+view.Customer.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	for _, line := range customerLines(&view.Customer) {
		pdf.CellFormat(contentW, 4, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Line table ───────────────────────────────────────────────────────────
	colCode := contentW * 0.12
	colName := contentW * 0.30
	colQty := contentW * 0.08
	colPrice := contentW * 0.14
	colSub := contentW * 0.14
	colTax := contentW * 0.08
	colTotal := contentW * 0.14

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colCode, 6, "Code", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colName, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, 6, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colPrice, 6, "Unit price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colSub, 6, "Subtotal", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colTax, 6, "VAT%", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colTotal, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, line := range view.Lines {
		name := line.Name
		if len(name) > 34 {
			name = name[:33] + "…"
		}
		pdf.CellFormat(colCode, 5, line.Code, "", 0, "L", false, 0, "")
		pdf.CellFormat(colName, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 5, fmt.Sprintf("%d", line.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(colPrice, 5, line.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colSub, 5, line.Subtotal.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colTax, 5, fmt.Sprintf("%d", line.TaxRate), "", 0, "C", false, 0, "")
		pdf.CellFormat(colTotal, 5, line.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := contentW - colTotal
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(labelW, 5, "Subtotal (excl. VAT):", "", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 5, view.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 5, "VAT:", "", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 5, view.TaxTotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !view.StampDuty.IsZero() {
		pdf.CellFormat(labelW, 5, "Stamp duty (cash, 1%):", "", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 5, view.StampDuty.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 7, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 7, view.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Amount in words ──────────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(contentW, 5, "This invoice is closed at the sum of: "+amountWords, "", "L", false)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return fileName, nil
}

func fiscalLines(t *model.TraderInfo) []string {
	var lines []string
	if t.Address != nil {
		lines = append(lines, *t.Address)
	}
	ids := fiscalIDs(t.CommercialRegister, t.TaxID, t.StatisticalID, t.ArticleID)
	if ids != "" {
		lines = append(lines, ids)
	}
	if t.Phone != nil {
		lines = append(lines, "Tel: "+*t.Phone)
	}
	return lines
}

func customerLines(c *dto.PartyResponse) []string {
	var lines []string
	if c.Address != nil {
		lines = append(lines, *c.Address)
	}
	ids := fiscalIDs(c.CommercialRegister, c.TaxID, c.StatisticalID, c.ArticleID)
	if ids != "" {
		lines = append(lines, ids)
	}
	return lines
}

// fiscalIDs formats the four registration identifiers that appear on legal
// invoices, skipping the ones not set.
func fiscalIDs(rc, nif, nis, ai *string) string {
	out := ""
	add := func(label string, v *string) {
		if v == nil || *v == "" {
			return
		}
		if out != "" {
			out += "  "
		}
		out += label + ": " + *v
	}
	add("RC", rc)
	add("NIF", nif)
	add("NIS", nis)
	add("AI", ai)
	return out
}
