package service_test

import (
	"context"
	"sort"
	"time"

	"fatoora/internal/dto"
	"fatoora/internal/model"
	"fatoora/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories. All Tx methods accept the nil *gorm.DB that runTx
// passes when no database is wired.

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.EntryDate.IsZero() {
		p.EntryDate = time.Now()
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	r.add(p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	return r.find(id)
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.find(id)
}

func (r *stubProductRepo) find(id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindOldestByCodeTx(_ *gorm.DB, code string) (*model.Product, error) {
	var oldest *model.Product
	for _, p := range r.products {
		if p.Code != code {
			continue
		}
		if oldest == nil || p.EntryDate.Before(oldest.EntryDate) {
			oldest = p
		}
	}
	if oldest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return oldest, nil
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		if filter.Code != "" && p.Code != filter.Code {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) AddQuantityTx(_ *gorm.DB, id uuid.UUID, quantity int) error {
	p, err := r.find(id)
	if err != nil {
		return err
	}
	p.Quantity += quantity
	return nil
}

func (r *stubProductRepo) ReserveTx(_ *gorm.DB, id uuid.UUID, quantity int) (bool, error) {
	p, err := r.find(id)
	if err != nil {
		return false, err
	}
	if p.Quantity < quantity {
		return false, nil
	}
	p.Quantity -= quantity
	return true, nil
}

func (r *stubProductRepo) StockLedger(_ context.Context) ([]dto.StockLedgerRow, error) {
	byCode := make(map[string]*dto.StockLedgerRow)
	for _, p := range r.products {
		row, ok := byCode[p.Code]
		if !ok {
			row = &dto.StockLedgerRow{Code: p.Code, Name: p.Name}
			byCode[p.Code] = row
		}
		row.Quantity += int64(p.Quantity)
		row.Batches++
	}
	var rows []dto.StockLedgerRow
	for _, row := range byCode {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubInvoiceRepo struct {
	invoices  map[uuid.UUID]*model.Invoice
	numberSeq int64
	// hydration sources mimic FindByID's preloads
	products  *stubProductRepo
	customers *stubCustomerRepo
	// failCreates makes the next N CreateTx calls return gorm.ErrDuplicatedKey
	failCreates int
}

func newStubInvoiceRepo(products *stubProductRepo, customers *stubCustomerRepo) *stubInvoiceRepo {
	return &stubInvoiceRepo{
		invoices:  make(map[uuid.UUID]*model.Invoice),
		products:  products,
		customers: customers,
	}
}

func (r *stubInvoiceRepo) CreateTx(_ context.Context, _ *gorm.DB, inv *model.Invoice) error {
	if r.failCreates > 0 {
		r.failCreates--
		return gorm.ErrDuplicatedKey
	}
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	for i := range inv.Items {
		if inv.Items[i].ID == uuid.Nil {
			inv.Items[i].ID = uuid.New()
		}
		inv.Items[i].InvoiceID = inv.ID
	}
	r.invoices[inv.ID] = inv
	if inv.Number > r.numberSeq {
		r.numberSeq = inv.Number
	}
	return nil
}

func (r *stubInvoiceRepo) NextNumberTx(_ *gorm.DB) (int64, error) {
	return r.numberSeq + 1, nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *inv
	if c, ok := r.customers.customers[inv.CustomerID]; ok {
		out.Customer = c
	}
	out.Items = append([]model.InvoiceItem(nil), inv.Items...)
	for i := range out.Items {
		if p, ok := r.products.products[out.Items[i].ProductID]; ok {
			out.Items[i].Product = p
		}
	}
	return &out, nil
}

func (r *stubInvoiceRepo) List(_ context.Context, _ dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	var out []model.Invoice
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, int64(len(out)), nil
}

func (r *stubInvoiceRepo) DB() *gorm.DB { return nil }

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) add(c *model.Customer) *model.Customer {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Active = true
	r.customers[c.ID] = c
	return c
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	r.add(c)
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) List(_ context.Context, _ dto.PartyFilter) ([]model.Customer, int64, error) {
	var out []model.Customer
	for _, c := range r.customers {
		if c.Active {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	c, ok := r.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Active = false
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)
