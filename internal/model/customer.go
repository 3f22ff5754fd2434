package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer identity with the fiscal-registration fields printed on invoices:
// commercial register (RC), tax id (NIF), statistical id (NIS), article id (AI).
type Customer struct {
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

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
