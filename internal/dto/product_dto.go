package dto

import "github.com/shopspring/decimal"

// ─── Stock entry ─────────────────────────────────────────────────────────────

// AddStockRequest is bound from POST /v1/stock-entries. When a product with
// the same code already exists, only quantity accumulates on the oldest batch;
// the remaining fields describe the new batch otherwise.
type AddStockRequest struct {
	Code               string          `json:"code"                 validate:"required"`
	Name               string          `json:"name"                 validate:"required"`
	Description        *string         `json:"description"`
	PurchasePrice      decimal.Decimal `json:"purchase_price"       validate:"min=0"`
	SellingPrice       decimal.Decimal `json:"selling_price"        validate:"min=0"`
	TaxRate            int             `json:"tax_rate"             validate:"oneof=0 9 19"`
	Quantity           int             `json:"quantity"             validate:"required,min=1"`
	PurchaseInvoiceRef string          `json:"purchase_invoice_ref"`
}

// UpdateProductRequest edits descriptive fields only. Quantity is never
// editable here — stock changes go through stock entry and invoice issuance.
type UpdateProductRequest struct {
	Name          string          `json:"name"           validate:"required"`
	Description   *string         `json:"description"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"min=0"`
	SellingPrice  decimal.Decimal `json:"selling_price"  validate:"min=0"`
	TaxRate       int             `json:"tax_rate"       validate:"oneof=0 9 19"`
}

// ─── Filter / list ───────────────────────────────────────────────────────────

type ProductFilter struct {
	Code  string `form:"code"`
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductResponse struct {
	ID                 string          `json:"id"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Description        *string         `json:"description,omitempty"`
	PurchasePrice      decimal.Decimal `json:"purchase_price"`
	SellingPrice       decimal.Decimal `json:"selling_price"`
	TaxRate            int             `json:"tax_rate"`
	Quantity           int             `json:"quantity"`
	PurchaseInvoiceRef string          `json:"purchase_invoice_ref,omitempty"`
	EntryDate          string          `json:"entry_date"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Stock ledger ────────────────────────────────────────────────────────────

// StockLedgerRow aggregates quantity on hand across all batches of one code.
type StockLedgerRow struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Batches  int    `json:"batches"`
}
