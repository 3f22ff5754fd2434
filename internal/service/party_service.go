package service

import (
	"context"
	"fmt"

	"fatoora/internal/dto"
	"fatoora/internal/model"
	"fatoora/internal/repository"

	"github.com/google/uuid"
)

// Customers and suppliers share the same shape and operations, so the two
// services mirror each other over their own repositories.

type CustomerService interface {
	Create(ctx context.Context, req dto.PartyRequest) (*dto.PartyResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PartyResponse, error)
	List(ctx context.Context, filter dto.PartyFilter) (*dto.PartyListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.PartyRequest) (*dto.PartyResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) CustomerService {
	return &customerService{customers: customers}
}

func (s *customerService) Create(ctx context.Context, req dto.PartyRequest) (*dto.PartyResponse, error) {
	c := model.Customer{
		Name:               req.Name,
		CommercialRegister: req.CommercialRegister,
		TaxID:              req.TaxID,
		StatisticalID:      req.StatisticalID,
		ArticleID:          req.ArticleID,
		Address:            req.Address,
		Phone:              req.Phone,
		Email:              req.Email,
		Active:             true,
	}
	if err := s.customers.Create(ctx, &c); err != nil {
		return nil, err
	}
	resp := customerToResponse(&c)
	return &resp, nil
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PartyResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, id)
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context, filter dto.PartyFilter) (*dto.PartyListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	customers, total, err := s.customers.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(customers))
	for i := range customers {
		items = append(items, customerToResponse(&customers[i]))
	}
	return &dto.PartyListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.PartyRequest) (*dto.PartyResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, id)
	}
	c.Name = req.Name
	c.CommercialRegister = req.CommercialRegister
	c.TaxID = req.TaxID
	c.StatisticalID = req.StatisticalID
	c.ArticleID = req.ArticleID
	c.Address = req.Address
	c.Phone = req.Phone
	c.Email = req.Email
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customers.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%w: customer %s", ErrNotFound, id)
	}
	return s.customers.Deactivate(ctx, id)
}

type SupplierService interface {
	Create(ctx context.Context, req dto.PartyRequest) (*dto.PartyResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PartyResponse, error)
	List(ctx context.Context, filter dto.PartyFilter) (*dto.PartyListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.PartyRequest) (*dto.PartyResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type supplierService struct {
	suppliers repository.SupplierRepository
}

func NewSupplierService(suppliers repository.SupplierRepository) SupplierService {
	return &supplierService{suppliers: suppliers}
}

func (s *supplierService) Create(ctx context.Context, req dto.PartyRequest) (*dto.PartyResponse, error) {
	sup := model.Supplier{
		Name:               req.Name,
		CommercialRegister: req.CommercialRegister,
		TaxID:              req.TaxID,
		StatisticalID:      req.StatisticalID,
		ArticleID:          req.ArticleID,
		Address:            req.Address,
		Phone:              req.Phone,
		Email:              req.Email,
		Active:             true,
	}
	if err := s.suppliers.Create(ctx, &sup); err != nil {
		return nil, err
	}
	resp := supplierToResponse(&sup)
	return &resp, nil
}

func (s *supplierService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PartyResponse, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: supplier %s", ErrNotFound, id)
	}
	resp := supplierToResponse(sup)
	return &resp, nil
}

func (s *supplierService) List(ctx context.Context, filter dto.PartyFilter) (*dto.PartyListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	suppliers, total, err := s.suppliers.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(suppliers))
	for i := range suppliers {
		items = append(items, supplierToResponse(&suppliers[i]))
	}
	return &dto.PartyListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.PartyRequest) (*dto.PartyResponse, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: supplier %s", ErrNotFound, id)
	}
	sup.Name = req.Name
	sup.CommercialRegister = req.CommercialRegister
	sup.TaxID = req.TaxID
	sup.StatisticalID = req.StatisticalID
	sup.ArticleID = req.ArticleID
	sup.Address = req.Address
	sup.Phone = req.Phone
	sup.Email = req.Email
	if err := s.suppliers.Update(ctx, sup); err != nil {
		return nil, err
	}
	resp := supplierToResponse(sup)
	return &resp, nil
}

func (s *supplierService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.suppliers.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%w: supplier %s", ErrNotFound, id)
	}
	return s.suppliers.Deactivate(ctx, id)
}

func supplierToResponse(sup *model.Supplier) dto.PartyResponse {
	return dto.PartyResponse{
		ID:                 sup.ID.String(),
		Name:               sup.Name,
		CommercialRegister: sup.CommercialRegister,
		TaxID:              sup.TaxID,
		StatisticalID:      sup.StatisticalID,
		ArticleID:          sup.ArticleID,
		Address:            sup.Address,
		Phone:              sup.Phone,
		Email:              sup.Email,
		Active:             sup.Active,
	}
}
