package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TraderInfo is the single record describing the issuing business. The table
// holds at most one row; TraderRepository.Put upserts into it.
type TraderInfo struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessName       string    `gorm:"not null"`
	CommercialRegister *string   `gorm:"column:commercial_register"`
	TaxID              *string   `gorm:"column:tax_id"`
	StatisticalID      *string   `gorm:"column:statistical_id"`
	ArticleID          *string   `gorm:"column:article_id"`
	Address            *string
	Phone              *string
	Email              *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides GORM's pluralization (trader_infos → trader_info).
func (TraderInfo) TableName() string { return "trader_info" }

func (t *TraderInfo) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
