package infra_test

import (
	"os"
	"path/filepath"
	"testing"

	"fatoora/internal/dto"
	"fatoora/internal/infra"
	"fatoora/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoicePDF(t *testing.T) {
	dir := t.TempDir()

	addr := "12 Rue des Martyrs"
	nif := "197003010012345"
	view := &dto.InvoiceView{
		Number:        42,
		IssueDate:     "2026-09-01T10:00:00Z",
		PaymentMethod: "cash",
		Customer:      dto.PartyResponse{Name: "Acme SARL", Address: &addr},
		Lines: []dto.InvoiceLine{
			{
				Code: "A-100", Name: "Copper wire", Quantity: 2,
				UnitPrice: decimal.RequireFromString("100.00"), TaxRate: 19,
				Subtotal: decimal.RequireFromString("200.00"),
				Tax:      decimal.RequireFromString("38.00"),
				Total:    decimal.RequireFromString("238.00"),
			},
		},
		Subtotal:  decimal.RequireFromString("200.00"),
		TaxTotal:  decimal.RequireFromString("38.00"),
		StampDuty: decimal.RequireFromString("2.38"),
		Total:     decimal.RequireFromString("240.38"),
	}
	trader := &model.TraderInfo{BusinessName: "Electro Center", TaxID: &nif, Address: &addr}

	fileName, err := infra.GenerateInvoicePDF(view, trader,
		"two hundred forty dinars and thirty-eight centimes", dir)
	require.NoError(t, err)
	assert.Equal(t, "invoice_42.pdf", fileName)

	info, err := os.Stat(filepath.Join(dir, fileName))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500), "PDF should not be empty")
}

func TestGenerateInvoicePDFCreatesStorageDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "pdfs")

	view := &dto.InvoiceView{
		Number:   1,
		Customer: dto.PartyResponse{Name: "Acme"},
		Total:    decimal.RequireFromString("10.00"),
	}
	trader := &model.TraderInfo{BusinessName: "Shop"}

	fileName, err := infra.GenerateInvoicePDF(view, trader, "ten dinars", dir)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, fileName))
	assert.NoError(t, err)
}
