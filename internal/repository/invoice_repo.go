package repository

import (
	"context"

	"fatoora/internal/dto"
	"fatoora/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	// CreateTx persists the invoice header and its items in one insert graph.
	CreateTx(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error
	// NextNumberTx allocates the next sequential invoice number inside the
	// issuance transaction. The unique index on number catches the race
	// between two concurrent issuances; callers retry on duplicate key.
	NextNumberTx(tx *gorm.DB) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error)
	DB() *gorm.DB
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) DB() *gorm.DB { return r.db }

func (r *invoiceRepo) CreateTx(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error {
	return tx.WithContext(ctx).Create(inv).Error
}

func (r *invoiceRepo) NextNumberTx(tx *gorm.DB) (int64, error) {
	// MAX+1 instead of a DB sequence so the same code runs on postgres and
	// sqlite; the unique index on number turns collisions into conflicts.
	var next int64
	err := tx.Model(&model.Invoice{}).
		Select("COALESCE(MAX(number), 0) + 1").
		Scan(&next).Error
	return next, err
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items.Product").Preload("Customer").
		First(&inv, "id = ?", id).Error
	return &inv, err
}

func (r *invoiceRepo) List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Invoice{})
	if filter.Date != "" {
		q = q.Where("DATE(issue_date) = ?", filter.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Customer").
		Order("number DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&invoices).Error
	return invoices, total, err
}
