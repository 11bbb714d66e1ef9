package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// La combinación (Name, Price, ManufacturerID) es única; el precio usa
// decimal para que esa igualdad sea exacta en la clave.
type Product struct {
	ID             int64
	Name           string
	Price          decimal.Decimal
	Description    string
	ManufacturerID int64
	// Denormalizado en consultas con JOIN para respuestas de lectura.
	ManufacturerName string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
