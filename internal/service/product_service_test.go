package service_test

import (
	"context"
	"testing"
	"time"

	"fatoora/internal/dto"
	"fatoora/internal/model"
	"fatoora/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddStockCreatesNewBatch(t *testing.T) {
	products := newStubProductRepo()
	svc := service.NewProductService(products)

	resp, err := svc.AddStock(context.Background(), dto.AddStockRequest{
		Code:               "A-100",
		Name:               "Copper wire",
		PurchasePrice:      decimal.RequireFromString("80.00"),
		SellingPrice:       decimal.RequireFromString("100.00"),
		TaxRate:            19,
		Quantity:           50,
		PurchaseInvoiceRef: "PI-2026-001",
	})
	require.NoError(t, err)

	assert.Equal(t, "A-100", resp.Code)
	assert.Equal(t, 50, resp.Quantity)
	assert.Len(t, products.products, 1)
}

func TestAddStockMergesIntoOldestBatch(t *testing.T) {
	products := newStubProductRepo()
	svc := service.NewProductService(products)

	older := products.add(&model.Product{
		Code: "A-100", Name: "Copper wire",
		SellingPrice: decimal.RequireFromString("100.00"),
		TaxRate:      19, Quantity: 10,
		EntryDate: time.Now().Add(-48 * time.Hour),
	})
	newer := products.add(&model.Product{
		Code: "A-100", Name: "Copper wire",
		SellingPrice: decimal.RequireFromString("110.00"),
		TaxRate:      19, Quantity: 5,
		EntryDate: time.Now().Add(-1 * time.Hour),
	})

	resp, err := svc.AddStock(context.Background(), dto.AddStockRequest{
		Code:         "A-100",
		Name:         "Copper wire",
		SellingPrice: decimal.RequireFromString("120.00"),
		TaxRate:      19,
		Quantity:     7,
	})
	require.NoError(t, err)

	// Merged into the oldest batch; no third row created
	assert.Equal(t, older.ID.String(), resp.ID)
	assert.Equal(t, 17, older.Quantity)
	assert.Equal(t, 5, newer.Quantity)
	assert.Len(t, products.products, 2)
	// The oldest batch keeps its own price — merging only accumulates quantity
	assert.True(t, older.SellingPrice.Equal(decimal.RequireFromString("100.00")))
}

func TestAddStockRejectsInvalidInput(t *testing.T) {
	products := newStubProductRepo()
	svc := service.NewProductService(products)

	cases := []struct {
		name string
		req  dto.AddStockRequest
	}{
		{"bad tax rate", dto.AddStockRequest{Code: "X", Name: "X", TaxRate: 7, Quantity: 1}},
		{"zero quantity", dto.AddStockRequest{Code: "X", Name: "X", TaxRate: 19, Quantity: 0}},
		{"negative price", dto.AddStockRequest{Code: "X", Name: "X", TaxRate: 19, Quantity: 1,
			SellingPrice: decimal.RequireFromString("-1")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddStock(context.Background(), tc.req)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}
	assert.Empty(t, products.products)
}

func TestUpdateDetailsNeverTouchesQuantity(t *testing.T) {
	products := newStubProductRepo()
	svc := service.NewProductService(products)

	p := products.add(&model.Product{
		Code: "A-100", Name: "Copper wire",
		SellingPrice: decimal.RequireFromString("100.00"),
		TaxRate:      19, Quantity: 42,
	})

	resp, err := svc.UpdateDetails(context.Background(), p.ID, dto.UpdateProductRequest{
		Name:         "Copper wire 2mm",
		SellingPrice: decimal.RequireFromString("105.00"),
		TaxRate:      9,
	})
	require.NoError(t, err)

	assert.Equal(t, "Copper wire 2mm", resp.Name)
	assert.Equal(t, 9, resp.TaxRate)
	assert.Equal(t, 42, resp.Quantity)
}

func TestUpdateDetailsUnknownProduct(t *testing.T) {
	svc := service.NewProductService(newStubProductRepo())
	_, err := svc.UpdateDetails(context.Background(), uuid.New(), dto.UpdateProductRequest{
		Name: "X", TaxRate: 19,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestStockLedgerAggregatesPerCode(t *testing.T) {
	products := newStubProductRepo()
	svc := service.NewProductService(products)

	products.add(&model.Product{Code: "A-100", Name: "Copper wire", TaxRate: 19, Quantity: 10})
	products.add(&model.Product{Code: "A-100", Name: "Copper wire", TaxRate: 19, Quantity: 5})
	products.add(&model.Product{Code: "B-200", Name: "Fuse box", TaxRate: 9, Quantity: 3})

	rows, err := svc.StockLedger(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "A-100", rows[0].Code)
	assert.Equal(t, int64(15), rows[0].Quantity)
	assert.Equal(t, 2, rows[0].Batches)
	assert.Equal(t, "B-200", rows[1].Code)
	assert.Equal(t, int64(3), rows[1].Quantity)
}
