package dto

type TraderRequest struct {
	BusinessName       string  `json:"business_name" validate:"required"`
	CommercialRegister *string `json:"commercial_register"`
	TaxID              *string `json:"tax_id"`
	StatisticalID      *string `json:"statistical_id"`
	ArticleID          *string `json:"article_id"`
	Address            *string `json:"address"`
	Phone              *string `json:"phone"`
	Email              *string `json:"email" validate:"omitempty,email"`
}

type TraderResponse struct {
	BusinessName       string  `json:"business_name"`
	CommercialRegister *string `json:"commercial_register,omitempty"`
	TaxID              *string `json:"tax_id,omitempty"`
	StatisticalID      *string `json:"statistical_id,omitempty"`
	ArticleID          *string `json:"article_id,omitempty"`
	Address            *string `json:"address,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	Email              *string `json:"email,omitempty"`
}
