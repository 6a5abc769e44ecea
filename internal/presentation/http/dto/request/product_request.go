package request

import "github.com/sangkips/salesdesk-api/internal/domain/finance"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Code        string         `json:"code" binding:"omitempty,max=100"`
	Name        string         `json:"name" binding:"required,max=255"`
	Description *string        `json:"description"`
	Price       finance.Number `json:"price"`
	VATPct      finance.Number `json:"vat_pct"`
	IsActive    *bool          `json:"is_active"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Code        *string         `json:"code" binding:"omitempty,min=1,max=100"`
	Name        *string         `json:"name" binding:"omitempty,max=255"`
	Description *string         `json:"description"`
	Price       *finance.Number `json:"price"`
	VATPct      *finance.Number `json:"vat_pct"`
	IsActive    *bool           `json:"is_active"`
}
