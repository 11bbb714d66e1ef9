package dto

import "time"

// CreateManufacturerRequest petición de creación de fabricante.
type CreateManufacturerRequest struct {
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	Contact     string `json:"contact"`
	Email       string `json:"email"`
}

// UpdateManufacturerRequest modificación parcial de fabricante.
type UpdateManufacturerRequest struct {
	CompanyName *string `json:"company_name"`
	Location    *string `json:"location"`
	Contact     *string `json:"contact"`
	Email       *string `json:"email"`
}

// ManufacturerResponse fabricante con su ID externo cifrado.
type ManufacturerResponse struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	Location    string    `json:"location"`
	Contact     string    `json:"contact"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ManufacturerListResponse listado paginado de fabricantes.
type ManufacturerListResponse struct {
	Items []ManufacturerResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
