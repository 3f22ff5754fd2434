package repository

import (
	"context"
	"errors"

	"fatoora/internal/model"

	"gorm.io/gorm"
)

// TraderRepository manages the single trader_info row.
type TraderRepository interface {
	// Get returns the trader record, or gorm.ErrRecordNotFound before setup.
	Get(ctx context.Context) (*model.TraderInfo, error)
	// Put creates the row on first call and overwrites it afterwards,
	// keeping the table at exactly one record.
	Put(ctx context.Context, t *model.TraderInfo) error
}

type traderRepo struct{ db *gorm.DB }

func NewTraderRepository(db *gorm.DB) TraderRepository { return &traderRepo{db: db} }

func (r *traderRepo) Get(ctx context.Context) (*model.TraderInfo, error) {
	var t model.TraderInfo
	err := r.db.WithContext(ctx).First(&t).Error
	return &t, err
}

func (r *traderRepo) Put(ctx context.Context, t *model.TraderInfo) error {
	existing, err := r.Get(ctx)
	switch {
	case err == nil:
		t.ID = existing.ID
		t.CreatedAt = existing.CreatedAt
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first setup — Save will insert
	default:
		return err
	}
	return r.db.WithContext(ctx).Save(t).Error
}
