package repository

import (
	"context"

	"fatoora/internal/dto"
	"fatoora/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for product batches.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs. Methods with a Tx suffix run inside
// a caller-supplied transaction — they are the only write path for quantity.
type ProductRepository interface {
	CreateTx(tx *gorm.DB, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	// FindOldestByCodeTx returns the earliest-entered batch sharing code,
	// the merge target for stock entry. gorm.ErrRecordNotFound when none.
	FindOldestByCodeTx(tx *gorm.DB, code string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	// AddQuantityTx accumulates quantity on an existing batch.
	AddQuantityTx(tx *gorm.DB, id uuid.UUID, quantity int) error
	// ReserveTx decrements quantity only when enough stock remains.
	// Returns false (and no change) when the guard fails — the same check
	// validation uses, applied atomically at decrement time.
	ReserveTx(tx *gorm.DB, id uuid.UUID, quantity int) (bool, error)
	// StockLedger aggregates quantity on hand per code across batches.
	StockLedger(ctx context.Context) ([]dto.StockLedgerRow, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) DB() *gorm.DB { return r.db }

func (r *productRepo) CreateTx(tx *gorm.DB, p *model.Product) error {
	return tx.Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindOldestByCodeTx(tx *gorm.DB, code string) (*model.Product, error) {
	var p model.Product
	err := tx.Where("code = ?", code).Order("entry_date ASC, created_at ASC").First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.Code != "" {
		q = q.Where("code = ?", filter.Code)
	}
	if filter.Name != "" {
		q = q.Where("name LIKE ?", "%"+filter.Name+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC, entry_date ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) AddQuantityTx(tx *gorm.DB, id uuid.UUID, quantity int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
}

func (r *productRepo) ReserveTx(tx *gorm.DB, id uuid.UUID, quantity int) (bool, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *productRepo) StockLedger(ctx context.Context) ([]dto.StockLedgerRow, error) {
	var rows []dto.StockLedgerRow
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("code, MIN(name) AS name, SUM(quantity) AS quantity, COUNT(*) AS batches").
		Group("code").Order("code ASC").
		Scan(&rows).Error
	return rows, err
}
