package service

import (
	"context"
	"fmt"

	"fatoora/internal/dto"
	"fatoora/internal/model"
	"fatoora/internal/repository"
)

type TraderService interface {
	Get(ctx context.Context) (*dto.TraderResponse, error)
	// Put creates the trader record on first call and replaces it afterwards.
	Put(ctx context.Context, req dto.TraderRequest) (*dto.TraderResponse, error)
}

type traderService struct {
	trader repository.TraderRepository
}

func NewTraderService(trader repository.TraderRepository) TraderService {
	return &traderService{trader: trader}
}

func (s *traderService) Get(ctx context.Context) (*dto.TraderResponse, error) {
	t, err := s.trader.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: trader profile not configured", ErrNotFound)
	}
	resp := traderToResponse(t)
	return &resp, nil
}

func (s *traderService) Put(ctx context.Context, req dto.TraderRequest) (*dto.TraderResponse, error) {
	t := model.TraderInfo{
		BusinessName:       req.BusinessName,
		CommercialRegister: req.CommercialRegister,
		TaxID:              req.TaxID,
		StatisticalID:      req.StatisticalID,
		ArticleID:          req.ArticleID,
		Address:            req.Address,
		Phone:              req.Phone,
		Email:              req.Email,
	}
	if err := s.trader.Put(ctx, &t); err != nil {
		return nil, err
	}
	resp := traderToResponse(&t)
	return &resp, nil
}

func traderToResponse(t *model.TraderInfo) dto.TraderResponse {
	return dto.TraderResponse{
		BusinessName:       t.BusinessName,
		CommercialRegister: t.CommercialRegister,
		TaxID:              t.TaxID,
		StatisticalID:      t.StatisticalID,
		ArticleID:          t.ArticleID,
		Address:            t.Address,
		Phone:              t.Phone,
		Email:              t.Email,
	}
}
