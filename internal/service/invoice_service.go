package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fatoora/internal/dto"
	"fatoora/internal/model"
	"fatoora/internal/repository"
	"fatoora/internal/tax"
	"fatoora/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceService interface {
	// Issue turns a (customer, lines, payment method) request into a
	// persisted, stock-consistent invoice. All-or-nothing: any failing line
	// aborts the whole request with no stock change and no rows written.
	Issue(ctx context.Context, req dto.IssueInvoiceRequest) (*dto.InvoiceResponse, error)
	// Rebuild re-derives an invoice's display/print breakdown strictly from
	// its stored items. Never mutates the cached header totals.
	Rebuild(ctx context.Context, id uuid.UUID) (*dto.InvoiceView, error)
	List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error)
}

type invoiceService struct {
	invoices   repository.InvoiceRepository
	products   repository.ProductRepository
	customers  repository.CustomerRepository
	dispatcher *worker.Dispatcher
}

func NewInvoiceService(
	invoices repository.InvoiceRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	dispatcher *worker.Dispatcher,
) InvoiceService {
	return &invoiceService{
		invoices:   invoices,
		products:   products,
		customers:  customers,
		dispatcher: dispatcher,
	}
}

// maxIssueAttempts bounds the validate→commit retry cycle on conflicts
// (lost stock reservation race or duplicate invoice number).
const maxIssueAttempts = 3

// ── Issue ─────────────────────────────────────────────────────────────────────
// One ACID transaction per attempt:
//   1. Resolve customer and every line; reject bad quantities and any line
//      exceeding availability BEFORE any stock is touched
//   2. Compute per-line breakdown (tax.ComputeLine) and running totals
//   3. Reserve stock per line with a conditional decrement — a failed guard
//      means a concurrent reservation won; roll back and retry
//   4. Allocate invoice number, persist Invoice + items (price and rate
//      frozen), stamp duty on the tax-inclusive total when paying cash
//   5. COMMIT, then (async) dispatch the PDF-rendering job

func (s *invoiceService) Issue(ctx context.Context, req dto.IssueInvoiceRequest) (*dto.InvoiceResponse, error) {
	method := model.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: customer_id: %v", ErrInvalidInput, err)
	}
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, req.CustomerID)
	}

	var resp *dto.InvoiceResponse
	for attempt := 1; ; attempt++ {
		resp, err = s.issueOnce(ctx, customerID, method, req)
		if err == nil || !errors.Is(err, ErrTransactionConflict) || attempt >= maxIssueAttempts {
			break
		}
		log.Warn().Int("attempt", attempt).Err(err).Msg("invoice issuance conflict, retrying")
	}
	if err != nil {
		return nil, err
	}

	// Async document rendering — best-effort, fire & forget
	if s.dispatcher != nil {
		payload := worker.DocumentJobPayload{InvoiceID: resp.ID, NotifyEmail: req.CustomerEmail}
		if err := s.dispatcher.EnqueueDocument(ctx, payload); err != nil {
			log.Warn().Err(err).Str("invoice_id", resp.ID).Msg("failed to enqueue document job")
		}
	}
	return resp, nil
}

type resolvedLine struct {
	product  *model.Product
	quantity int
	amounts  tax.Line
}

func (s *invoiceService) issueOnce(
	ctx context.Context,
	customerID uuid.UUID,
	method model.PaymentMethod,
	req dto.IssueInvoiceRequest,
) (*dto.InvoiceResponse, error) {
	var inv model.Invoice
	var resolved []resolvedLine

	txErr := runTx(ctx, s.invoices.DB(), func(tx *gorm.DB) error {
		// 1. Validate every line before touching stock — a late failure must
		// not leave earlier lines decremented.
		resolved = resolved[:0]
		for _, item := range req.Items {
			if item.Quantity < 1 {
				return fmt.Errorf("%w: quantity %d for product %s", ErrInvalidInput, item.Quantity, item.ProductID)
			}
			pid, err := uuid.Parse(item.ProductID)
			if err != nil {
				return fmt.Errorf("%w: product_id: %v", ErrInvalidInput, err)
			}
			p, err := s.products.FindByIDTx(tx, pid)
			if err != nil {
				return fmt.Errorf("%w: product %s", ErrNotFound, item.ProductID)
			}
			if p.Quantity < item.Quantity {
				return fmt.Errorf("%w: product %s has %d on hand, requested %d",
					ErrInsufficientStock, p.Code, p.Quantity, item.Quantity)
			}
			amounts, err := tax.ComputeLine(p.SellingPrice, item.Quantity, p.TaxRate)
			if err != nil {
				return fmt.Errorf("%w: product %s: %v", ErrInvalidInput, p.Code, err)
			}
			resolved = append(resolved, resolvedLine{product: p, quantity: item.Quantity, amounts: amounts})
		}

		// 2. Reserve stock. The conditional decrement re-applies the
		// availability check atomically; a failed guard means another
		// transaction consumed the stock after our validation read.
		for _, r := range resolved {
			ok, err := s.products.ReserveTx(tx, r.product.ID, r.quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: stock of product %s reserved concurrently",
					ErrTransactionConflict, r.product.Code)
			}
		}

		// 3. Totals
		subtotal, taxTotal := decimal.Zero, decimal.Zero
		for _, r := range resolved {
			subtotal = subtotal.Add(r.amounts.Subtotal)
			taxTotal = taxTotal.Add(r.amounts.Tax)
		}
		afterTax := subtotal.Add(taxTotal)
		stampDuty := tax.StampDuty(afterTax, method)

		// 4. Persist header + items
		number, err := s.invoices.NextNumberTx(tx)
		if err != nil {
			return err
		}
		inv = model.Invoice{
			Number:        number,
			CustomerID:    customerID,
			IssueDate:     time.Now(),
			PaymentMethod: method,
			Subtotal:      subtotal,
			TaxTotal:      taxTotal,
			StampDuty:     stampDuty,
			Total:         afterTax.Add(stampDuty),
		}
		for _, r := range resolved {
			inv.Items = append(inv.Items, model.InvoiceItem{
				ProductID: r.product.ID,
				Quantity:  r.quantity,
				UnitPrice: r.product.SellingPrice,
				TaxRate:   r.product.TaxRate,
			})
		}
		if err := s.invoices.CreateTx(ctx, tx, &inv); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: invoice number %d already allocated", ErrTransactionConflict, number)
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &dto.InvoiceResponse{
		ID:            inv.ID.String(),
		Number:        inv.Number,
		CustomerID:    inv.CustomerID.String(),
		IssueDate:     inv.IssueDate.Format(time.RFC3339),
		PaymentMethod: string(inv.PaymentMethod),
		Subtotal:      inv.Subtotal,
		TaxTotal:      inv.TaxTotal,
		StampDuty:     inv.StampDuty,
		Total:         inv.Total,
	}
	for _, r := range resolved {
		resp.Lines = append(resp.Lines, dto.InvoiceLine{
			ProductID: r.product.ID.String(),
			Code:      r.product.Code,
			Name:      r.product.Name,
			Quantity:  r.quantity,
			UnitPrice: r.product.SellingPrice,
			TaxRate:   r.product.TaxRate,
			Subtotal:  r.amounts.Subtotal,
			Tax:       r.amounts.Tax,
			Total:     r.amounts.Total,
		})
	}
	return resp, nil
}

// ── Rebuild ───────────────────────────────────────────────────────────────────

func (s *invoiceService) Rebuild(ctx context.Context, id uuid.UUID) (*dto.InvoiceView, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: invoice %s", ErrNotFound, id)
	}
	if inv.Customer == nil {
		return nil, fmt.Errorf("%w: customer of invoice %d", ErrNotFound, inv.Number)
	}

	view := &dto.InvoiceView{
		ID:            inv.ID.String(),
		Number:        inv.Number,
		IssueDate:     inv.IssueDate.Format(time.RFC3339),
		PaymentMethod: string(inv.PaymentMethod),
		Customer:      customerToResponse(inv.Customer),
		StoredTotal:   inv.Total,
	}

	// Re-derive every line from the frozen item rows. The live product row
	// supplies display fields only (code, name) — never price or rate.
	subtotal, taxTotal := decimal.Zero, decimal.Zero
	for _, item := range inv.Items {
		if item.Product == nil {
			return nil, fmt.Errorf("%w: product %s of invoice %d", ErrNotFound, item.ProductID, inv.Number)
		}
		amounts, err := tax.ComputeLine(item.UnitPrice, item.Quantity, item.TaxRate)
		if err != nil {
			return nil, fmt.Errorf("stored item %s: %w", item.ID, err)
		}
		subtotal = subtotal.Add(amounts.Subtotal)
		taxTotal = taxTotal.Add(amounts.Tax)
		view.Lines = append(view.Lines, dto.InvoiceLine{
			ProductID: item.ProductID.String(),
			Code:      item.Product.Code,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			TaxRate:   item.TaxRate,
			Subtotal:  amounts.Subtotal,
			Tax:       amounts.Tax,
			Total:     amounts.Total,
		})
	}

	afterTax := subtotal.Add(taxTotal)
	view.Subtotal = subtotal
	view.TaxTotal = taxTotal
	view.StampDuty = tax.StampDuty(afterTax, inv.PaymentMethod)
	view.Total = afterTax.Add(view.StampDuty)
	view.Reconciled = view.Total.Equal(inv.Total)
	if !view.Reconciled {
		log.Warn().
			Int64("number", inv.Number).
			Str("stored", inv.Total.String()).
			Str("recomputed", view.Total.String()).
			Msg("invoice total does not reconcile with stored items")
	}
	return view, nil
}

// ── List ──────────────────────────────────────────────────────────────────────

func (s *invoiceService) List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	invoices, total, err := s.invoices.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceListItem, 0, len(invoices))
	for _, inv := range invoices {
		customerName := ""
		if inv.Customer != nil {
			customerName = inv.Customer.Name
		}
		items = append(items, dto.InvoiceListItem{
			ID:            inv.ID.String(),
			Number:        inv.Number,
			CustomerName:  customerName,
			IssueDate:     inv.IssueDate.Format("2006-01-02"),
			PaymentMethod: string(inv.PaymentMethod),
			StampDuty:     inv.StampDuty,
			Total:         inv.Total,
		})
	}
	return &dto.InvoiceListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func customerToResponse(c *model.Customer) dto.PartyResponse {
	return dto.PartyResponse{
		ID:                 c.ID.String(),
		Name:               c.Name,
		CommercialRegister: c.CommercialRegister,
		TaxID:              c.TaxID,
		StatisticalID:      c.StatisticalID,
		ArticleID:          c.ArticleID,
		Address:            c.Address,
		Phone:              c.Phone,
		Email:              c.Email,
		Active:             c.Active,
	}
}
