package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest petición de creación de producto.
// ManufacturerID es el ID externo cifrado del fabricante.
type CreateProductRequest struct {
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Description    string          `json:"description"`
	ManufacturerID string          `json:"manufacturer_id"`
}

// UpdateProductRequest modificación parcial de producto.
type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	Price          *decimal.Decimal `json:"price"`
	Description    *string          `json:"description"`
	ManufacturerID *string          `json:"manufacturer_id"`
}

// ProductResponse producto con IDs externos cifrados.
type ProductResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	Description      string          `json:"description"`
	ManufacturerID   string          `json:"manufacturer_id"`
	ManufacturerName string          `json:"manufacturer_name"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
