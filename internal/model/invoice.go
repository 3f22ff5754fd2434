package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMethod is how the customer settled the invoice. Cash triggers the 1%
// stamp-duty surcharge on the tax-inclusive total.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCheck        PaymentMethod = "check"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCheck, PaymentBankTransfer:
		return true
	}
	return false
}

// Invoice header. Subtotal, TaxTotal, StampDuty and Total are cached results
// of issuance-time computation; the items are the system of record and the
// totals must always be re-derivable from them (see service.Rebuild).
type Invoice struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Number        int64         `gorm:"uniqueIndex;not null"`
	CustomerID    uuid.UUID     `gorm:"type:uuid;index;not null"`
	IssueDate     time.Time     `gorm:"not null"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StampDuty     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Customer *Customer     `gorm:"foreignKey:CustomerID"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID"`
}

func (i *Invoice) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// InvoiceItem freezes both UnitPrice and TaxRate at issuance time. The
// product's selling price or rate may change afterwards without affecting
// historical invoices; reconstruction reads only these columns.
type InvoiceItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxRate   int             `gorm:"not null"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (i *InvoiceItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
