package entity

import "time"

// Inventory representa el registro de stock de un producto en un almacén.
// La combinación (ProductID, WarehouseID) es única. Quantity nunca es
// negativa; cantidad cero es un estado normal, el registro solo desaparece
// con una baja explícita.
type Inventory struct {
	ID          int64
	ProductID   int64
	WarehouseID int64
	Quantity    int64
	// Denormalizados en consultas con JOIN para respuestas de lectura.
	ProductName   string
	WarehouseName string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
