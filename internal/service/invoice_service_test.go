package service_test

import (
	"context"
	"testing"

	"fatoora/internal/dto"
	"fatoora/internal/model"
	"fatoora/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildInvoiceSvc() (service.InvoiceService, *stubInvoiceRepo, *stubProductRepo, *stubCustomerRepo) {
	products := newStubProductRepo()
	customers := newStubCustomerRepo()
	invoices := newStubInvoiceRepo(products, customers)
	svc := service.NewInvoiceService(invoices, products, customers, nil)
	return svc, invoices, products, customers
}

func seedProduct(products *stubProductRepo, code string, price string, taxRate, qty int) *model.Product {
	return products.add(&model.Product{
		Code:         code,
		Name:         "Product " + code,
		SellingPrice: decimal.RequireFromString(price),
		TaxRate:      taxRate,
		Quantity:     qty,
	})
}

func TestIssueComputesTotalsAndDecrementsStock(t *testing.T) {
	svc, _, products, customers := buildInvoiceSvc()
	cust := customers.add(&model.Customer{Name: "Acme"})
	p := seedProduct(products, "A-100", "100.00", 19, 10)

	resp, err := svc.Issue(context.Background(), dto.IssueInvoiceRequest{
		CustomerID:    cust.ID.String(),
		PaymentMethod: "bank_transfer",
		Items:         []dto.InvoiceItemRequest{{ProductID: p.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Number)
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("200.00")), "subtotal = %s", resp.Subtotal)
	assert.True(t, resp.TaxTotal.Equal(decimal.RequireFromString("38.00")), "tax = %s", resp.TaxTotal)
	assert.True(t, resp.StampDuty.IsZero())
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("238.00")), "total = %s", resp.Total)
	assert.Equal(t, 8, p.Quantity)
}

func TestIssueCashAddsStampDuty(t *testing.T) {
	svc, _, products, customers := buildInvoiceSvc()
	cust := customers.add(&model.Customer{Name: "Acme"})
	p := seedProduct(products, "A-100", "100.00", 19, 10)

	resp, err := svc.Issue(context.Background(), dto.IssueInvoiceRequest{
		CustomerID:    cust.ID.String(),
		PaymentMethod: "cash",
		Items:         []dto.InvoiceItemRequest{{ProductID: p.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	// 1% of 238.00
	assert.True(t, resp.StampDuty.Equal(decimal.RequireFromString("2.38")), "stamp duty = %s", resp.StampDuty)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("240.38")), "total = %s", resp.Total)
}

func TestIssueMixedRatesPerLine(t *testing.T) {
	svc, _, products, customers := buildInvoiceSvc()
	cust := customers.add(&model.Customer{Name: "Acme"})
	p19 := seedProduct(products, "A-19", "50.00", 19, 5)
	p9 := seedProduct(products, "B-09", "20.00", 9, 5)
	p0 := seedProduct(products, "C-00", "10.00", 0, 5)

	resp, err := svc.Issue(context.Background(), dto.IssueInvoiceRequest{
		CustomerID:    cust.ID.String(),
		PaymentMethod: "check",
		Items: []dto.InvoiceItemRequest{
			{ProductID: p19.ID.String(), Quantity: 1},
			{ProductID: p9.ID.String(), Quantity: 1},
			{ProductID: p0.ID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	// 50×19% = 9.50, 20×9% = 1.80, 10×0% = 0
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("80.00")))
	assert.True(t, resp.TaxTotal.Equal(decimal.RequireFromString("11.30")), "tax = %s", resp.TaxTotal)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("91.30")))
}

func TestIssueInsufficientStockChangesNothing(t *testing.T) {
	svc, invoices, products, customers := buildInvoiceSvc()
	cust := customers.add(&model.Customer{Name: "Acme"})
	ok := seedProduct(products, "A-100", "100.00", 19, 10)
	scarce := seedProduct(products, "B-200", "50.00", 9, 1)

	_, err := svc.Issue(context.Background(), dto.IssueInvoiceRequest{
		CustomerID:    cust.ID.String(),
		PaymentMethod: "cash",
		Items: []dto.InvoiceItemRequest{
			{ProductID: ok.ID.String(), Quantity: 2},
			{ProductID: scarce.ID.String(), Quantity: 5},
		},
	})
	require.ErrorIs(t, err, service.ErrInsufficientStock)

	// All-or-nothing: the first line must not have been decremented either
	assert.Equal(t, 10, ok.Quantity)
	assert.Equal(t, 1, scarce.Quantity)
	assert.Empty(t, invoices.invoices)
}

func TestIssueRejectsBadInput(t *testing.T) {
	svc, _, products, customers := buildInvoiceSvc()
	cust := customers.add(&model.Customer{Name: "Acme"})
	p := seedProduct(products, "A-100", "100.00", 19, 10)

	cases := []struct {
		name string
		req  dto.IssueInvoiceRequest
		want error
	}{
		{
			"unknown payment method",
			dto.IssueInvoiceRequest{CustomerID: cust.ID.String(), PaymentMethod: "crypto",
				Items: []dto.InvoiceItemRequest{{ProductID: p.ID.String(), Quantity: 1}}},
			service.ErrInvalidInput,
		},
		{
			"zero quantity",
			dto.IssueInvoiceRequest{CustomerID: cust.ID.String(), PaymentMethod: "cash",
				Items: []dto.InvoiceItemRequest{{ProductID: p.ID.String(), Quantity: 0}}},
			service.ErrInvalidInput,
		},
		{
			"unknown customer",
			dto.IssueInvoiceRequest{CustomerID: uuid.NewString(), PaymentMethod: "cash",
				Items: []dto.InvoiceItemRequest{{ProductID: p.ID.String(), Quantity: 1}}},
			service.ErrNotFound,
		},
		{
			"unknown product",
			dto.IssueInvoiceRequest{CustomerID: cust.ID.String(), PaymentMethod: "cash",
				Items: []dto.InvoiceItemRequest{{ProductID: uuid.NewString(), Quantity: 1}}},
			service.ErrNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Issue(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestIssueRetriesOnNumberConflict(t *testing.T) {
	svc, invoices, products, customers := buildInvoiceSvc()
	cust := customers.add(&model.Customer{Name: "Acme"})
	p := seedProduct(products, "A-100", "100.00", 19, 10)

	invoices.failCreates = 2 // first two attempts collide, third succeeds

	resp, err := svc.Issue(context.Background(), dto.IssueInvoiceRequest{
		CustomerID:    cust.ID.String(),
		PaymentMethod: "cash",
		Items:         []dto.InvoiceItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Number)
	assert.Len(t, invoices.invoices, 1)
}

func TestIssueSequentialNumbers(t *testing.T) {
	svc, _, products, customers := buildInvoiceSvc()
	cust := customers.add(&model.Customer{Name: "Acme"})
	p := seedProduct(products, "A-100", "100.00", 19, 10)

	for want := int64(1); want <= 3; want++ {
		resp, err := svc.Issue(context.Background(), dto.IssueInvoiceRequest{
			CustomerID:    cust.ID.String(),
			PaymentMethod: "check",
			Items:         []dto.InvoiceItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, want, resp.Number)
	}
}

func TestRebuildSurvivesPriceDrift(t *testing.T) {
	svc, _, products, customers := buildInvoiceSvc()
	cust := customers.add(&model.Customer{Name: "Acme"})
	p := seedProduct(products, "A-100", "100.00", 19, 10)

	issued, err := svc.Issue(context.Background(), dto.IssueInvoiceRequest{
		CustomerID:    cust.ID.String(),
		PaymentMethod: "cash",
		Items:         []dto.InvoiceItemRequest{{ProductID: p.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	// Catalog changes after issuance must not affect the stored invoice
	p.SellingPrice = decimal.RequireFromString("999.99")
	p.TaxRate = 0

	view, err := svc.Rebuild(context.Background(), uuid.MustParse(issued.ID))
	require.NoError(t, err)

	assert.True(t, view.Total.Equal(issued.Total), "rebuilt %s, issued %s", view.Total, issued.Total)
	assert.True(t, view.Reconciled)
	require.Len(t, view.Lines, 1)
	assert.True(t, view.Lines[0].UnitPrice.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, 19, view.Lines[0].TaxRate)
}

func TestRebuildIsIdempotent(t *testing.T) {
	svc, _, products, customers := buildInvoiceSvc()
	cust := customers.add(&model.Customer{Name: "Acme"})
	p := seedProduct(products, "A-100", "33.33", 9, 10)

	issued, err := svc.Issue(context.Background(), dto.IssueInvoiceRequest{
		CustomerID:    cust.ID.String(),
		PaymentMethod: "cash",
		Items:         []dto.InvoiceItemRequest{{ProductID: p.ID.String(), Quantity: 3}},
	})
	require.NoError(t, err)

	id := uuid.MustParse(issued.ID)
	first, err := svc.Rebuild(context.Background(), id)
	require.NoError(t, err)
	second, err := svc.Rebuild(context.Background(), id)
	require.NoError(t, err)

	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.TaxTotal.Equal(second.TaxTotal))
	assert.True(t, first.StampDuty.Equal(second.StampDuty))
}

func TestRebuildFlagsUnreconciledTotal(t *testing.T) {
	svc, invoices, products, customers := buildInvoiceSvc()
	cust := customers.add(&model.Customer{Name: "Acme"})
	p := seedProduct(products, "A-100", "100.00", 19, 10)

	issued, err := svc.Issue(context.Background(), dto.IssueInvoiceRequest{
		CustomerID:    cust.ID.String(),
		PaymentMethod: "check",
		Items:         []dto.InvoiceItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	// Corrupt the cached header total; the stored items stay intact
	id := uuid.MustParse(issued.ID)
	invoices.invoices[id].Total = decimal.RequireFromString("1.00")

	view, err := svc.Rebuild(context.Background(), id)
	require.NoError(t, err)

	assert.False(t, view.Reconciled)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("119.00")))
	assert.True(t, view.StoredTotal.Equal(decimal.RequireFromString("1.00")))
}

func TestRebuildUnknownInvoice(t *testing.T) {
	svc, _, _, _ := buildInvoiceSvc()
	_, err := svc.Rebuild(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestStockConservationAcrossIssuances(t *testing.T) {
	svc, _, products, customers := buildInvoiceSvc()
	cust := customers.add(&model.Customer{Name: "Acme"})
	p := seedProduct(products, "A-100", "10.00", 0, 7)

	sold := 0
	for _, qty := range []int{3, 2, 5, 1} {
		_, err := svc.Issue(context.Background(), dto.IssueInvoiceRequest{
			CustomerID:    cust.ID.String(),
			PaymentMethod: "check",
			Items:         []dto.InvoiceItemRequest{{ProductID: p.ID.String(), Quantity: qty}},
		})
		if err == nil {
			sold += qty
		}
	}
	assert.Equal(t, 7-sold, p.Quantity)
	assert.GreaterOrEqual(t, p.Quantity, 0)
}
