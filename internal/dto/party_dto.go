package dto

// PartyRequest covers customers and suppliers — both carry the same identity
// and fiscal-registration fields.
type PartyRequest struct {
	Name               string  `json:"name" validate:"required"`
	CommercialRegister *string `json:"commercial_register"`
	TaxID              *string `json:"tax_id"`
	StatisticalID      *string `json:"statistical_id"`
	ArticleID          *string `json:"article_id"`
	Address            *string `json:"address"`
	Phone              *string `json:"phone"`
	Email              *string `json:"email" validate:"omitempty,email"`
}

type PartyResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	CommercialRegister *string `json:"commercial_register,omitempty"`
	TaxID              *string `json:"tax_id,omitempty"`
	StatisticalID      *string `json:"statistical_id,omitempty"`
	ArticleID          *string `json:"article_id,omitempty"`
	Address            *string `json:"address,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	Email              *string `json:"email,omitempty"`
	Active             bool    `json:"active"`
}

type PartyListResponse struct {
	Data  []PartyResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type PartyFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}
