package entity

import "time"

// Warehouse representa un almacén donde se guarda inventario.
type Warehouse struct {
	ID        int64
	Name      string
	Location  string
	Contact   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
