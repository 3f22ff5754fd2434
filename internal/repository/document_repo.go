package repository

import (
	"context"
	"time"

	"fatoora/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, d *model.InvoiceDocument) error
	Update(ctx context.Context, d *model.InvoiceDocument) error
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*model.InvoiceDocument, error)
	// ListPendingRetries returns pending documents whose next_retry_at has
	// passed, oldest first, for the retry cron.
	ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.InvoiceDocument, error)
}

type documentRepo struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) DocumentRepository { return &documentRepo{db: db} }

func (r *documentRepo) Create(ctx context.Context, d *model.InvoiceDocument) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *documentRepo) Update(ctx context.Context, d *model.InvoiceDocument) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *documentRepo) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*model.InvoiceDocument, error) {
	var d model.InvoiceDocument
	err := r.db.WithContext(ctx).First(&d, "invoice_id = ?", invoiceID).Error
	return &d, err
}

func (r *documentRepo) ListPendingRetries(ctx context.Context, now time.Time, limit int) ([]model.InvoiceDocument, error) {
	var docs []model.InvoiceDocument
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", model.DocumentPending, now).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&docs).Error
	return docs, err
}
