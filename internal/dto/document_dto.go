package dto

type DocumentResponse struct {
	InvoiceID  string  `json:"invoice_id"`
	Status     string  `json:"status"`
	PDFPath    *string `json:"pdf_path,omitempty"`
	RetryCount int     `json:"retry_count"`
	LastError  *string `json:"last_error,omitempty"`
	UpdatedAt  string  `json:"updated_at"`
}
