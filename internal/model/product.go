package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is one stock batch. Code is a grouping key, NOT unique at the row
// level: receiving goods from different purchase invoices under the same code
// may legitimately produce several batch rows. AddStock merges quantity into
// the oldest batch; the stock ledger aggregates per code.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code        string    `gorm:"index;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	// Tax-exclusive prices in the shop's single currency
	PurchasePrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// TaxRate is the VAT percentage: 0, 9 or 19
	TaxRate int `gorm:"not null"`
	// Quantity on hand. Never negative: all decrements go through a
	// conditional UPDATE guarded by quantity >= requested.
	Quantity           int    `gorm:"not null;default:0"`
	PurchaseInvoiceRef string `gorm:"column:purchase_invoice_ref"`
	EntryDate          time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// BeforeCreate assigns the id in Go so the schema works on both postgres and
// sqlite (no gen_random_uuid dependency).
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
