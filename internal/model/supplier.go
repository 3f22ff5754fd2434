package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier carries the same fiscal identity fields as Customer. Suppliers are
// referenced from stock entry paperwork only; nothing in invoicing reads them.
type Supplier struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"index;not null"`
	CommercialRegister *string   `gorm:"column:commercial_register"`
	TaxID              *string   `gorm:"column:tax_id"`
	StatisticalID      *string   `gorm:"column:statistical_id"`
	ArticleID          *string   `gorm:"column:article_id"`
	Address            *string
	Phone              *string
	Email              *string
	Active             bool `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (s *Supplier) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
