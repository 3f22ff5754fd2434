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

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	// AddStock records incoming goods. When a batch with the same code already
	// exists, quantity merges into the oldest batch; otherwise a new batch row
	// is created from the request fields.
	AddStock(ctx context.Context, req dto.AddStockRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	// UpdateDetails edits descriptive fields. Quantity is out of reach here.
	UpdateDetails(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	StockLedger(ctx context.Context) ([]dto.StockLedgerRow, error)
}

type productService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) AddStock(ctx context.Context, req dto.AddStockRequest) (*dto.ProductResponse, error) {
	if !tax.ValidRate(req.TaxRate) {
		return nil, fmt.Errorf("%w: tax rate %d", ErrInvalidInput, req.TaxRate)
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity %d", ErrInvalidInput, req.Quantity)
	}
	if req.PurchasePrice.IsNegative() || req.SellingPrice.IsNegative() {
		return nil, fmt.Errorf("%w: prices must not be negative", ErrInvalidInput)
	}

	var out model.Product
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		existing, err := s.products.FindOldestByCodeTx(tx, req.Code)
		switch {
		case err == nil:
			if err := s.products.AddQuantityTx(tx, existing.ID, req.Quantity); err != nil {
				return err
			}
			out = *existing
			out.Quantity += req.Quantity
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			p := model.Product{
				Code:               req.Code,
				Name:               req.Name,
				Description:        req.Description,
				PurchasePrice:      req.PurchasePrice,
				SellingPrice:       req.SellingPrice,
				TaxRate:            req.TaxRate,
				Quantity:           req.Quantity,
				PurchaseInvoiceRef: req.PurchaseInvoiceRef,
				EntryDate:          time.Now(),
			}
			if err := s.products.CreateTx(tx, &p); err != nil {
				return err
			}
			out = p
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	resp := productToResponse(&out)
	return &resp, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) UpdateDetails(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !tax.ValidRate(req.TaxRate) {
		return nil, fmt.Errorf("%w: tax rate %d", ErrInvalidInput, req.TaxRate)
	}
	if req.PurchasePrice.IsNegative() || req.SellingPrice.IsNegative() {
		return nil, fmt.Errorf("%w: prices must not be negative", ErrInvalidInput)
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	p.Name = req.Name
	p.Description = req.Description
	p.PurchasePrice = req.PurchasePrice
	p.SellingPrice = req.SellingPrice
	p.TaxRate = req.TaxRate
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) StockLedger(ctx context.Context) ([]dto.StockLedgerRow, error) {
	return s.products.StockLedger(ctx)
}

func productToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                 p.ID.String(),
		Code:               p.Code,
		Name:               p.Name,
		Description:        p.Description,
		PurchasePrice:      p.PurchasePrice,
		SellingPrice:       p.SellingPrice,
		TaxRate:            p.TaxRate,
		Quantity:           p.Quantity,
		PurchaseInvoiceRef: p.PurchaseInvoiceRef,
		EntryDate:          p.EntryDate.Format("2006-01-02"),
	}
}
