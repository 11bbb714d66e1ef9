package entity

import "time"

// Manufacturer representa un fabricante de productos.
type Manufacturer struct {
	ID          int64
	CompanyName string
	Location    string
	Contact     string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
