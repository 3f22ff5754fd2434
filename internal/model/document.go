package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DocumentPending  = "pending"
	DocumentRendered = "rendered"
	DocumentError    = "error"
)

// InvoiceDocument tracks the rendered PDF for an invoice.
// Status: "pending" | "rendered" | "error"
type InvoiceDocument struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'"`
	// PDFPath is relative to PDF_STORAGE_PATH
	PDFPath *string `gorm:"column:pdf_path"`
	// NotifyEmail, when set, makes the worker mail the PDF after rendering
	NotifyEmail *string
	// Retry fields — used by retry_cron to re-attempt failed renders
	RetryCount  int        `gorm:"not null;default:0"`
	NextRetryAt *time.Time `gorm:"column:next_retry_at"`
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (d *InvoiceDocument) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
