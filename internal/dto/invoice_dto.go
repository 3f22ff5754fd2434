package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type InvoiceItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type IssueInvoiceRequest struct {
	CustomerID    string               `json:"customer_id"    validate:"required,uuid"`
	Items         []InvoiceItemRequest `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod string               `json:"payment_method" validate:"required,oneof=cash check bank_transfer"`
	// CustomerEmail: optional — when present, the document worker mails the PDF.
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// InvoiceLine is one row of the per-line breakdown table shown to the UI and
// printed on the document.
type InvoiceLine struct {
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   int             `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

type InvoiceResponse struct {
	ID            string          `json:"id"`
	Number        int64           `json:"number"`
	CustomerID    string          `json:"customer_id"`
	IssueDate     string          `json:"issue_date"`
	PaymentMethod string          `json:"payment_method"`
	Lines         []InvoiceLine   `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxTotal      decimal.Decimal `json:"tax_total"`
	StampDuty     decimal.Decimal `json:"stamp_duty"`
	Total         decimal.Decimal `json:"total"`
}

// InvoiceView is the reconstructor's output: everything re-derived from the
// stored InvoiceItem rows. StoredTotal carries the cached header total for
// cross-checking; Reconciled is false when the two disagree.
type InvoiceView struct {
	ID            string          `json:"id"`
	Number        int64           `json:"number"`
	IssueDate     string          `json:"issue_date"`
	PaymentMethod string          `json:"payment_method"`
	Customer      PartyResponse   `json:"customer"`
	Lines         []InvoiceLine   `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxTotal      decimal.Decimal `json:"tax_total"`
	StampDuty     decimal.Decimal `json:"stamp_duty"`
	Total         decimal.Decimal `json:"total"`
	StoredTotal   decimal.Decimal `json:"stored_total"`
	Reconciled    bool            `json:"reconciled"`
}

// ─── Filter / list ───────────────────────────────────────────────────────────

type InvoiceFilter struct {
	Date  string `form:"date"` // YYYY-MM-DD; empty = all
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type InvoiceListItem struct {
	ID            string          `json:"id"`
	Number        int64           `json:"number"`
	CustomerName  string          `json:"customer_name"`
	IssueDate     string          `json:"issue_date"`
	PaymentMethod string          `json:"payment_method"`
	StampDuty     decimal.Decimal `json:"stamp_duty"`
	Total         decimal.Decimal `json:"total"`
}

type InvoiceListResponse struct {
	Data  []InvoiceListItem `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
