package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada = "ENTRADA" // entrada de stock
	MovementTypeSalida  = "SALIDA"  // salida de stock
	MovementTypeBaja    = "BAJA"    // baja del registro (write-off)
)

// Movement es el registro de auditoría de cada mutación de stock.
// Se escribe en la misma transacción que la mutación; Quantity lleva signo
// (positivo en entradas, negativo en salidas y bajas).
type Movement struct {
	ID          string // uuid
	InventoryID int64
	Type        string
	Quantity    int64
	CreatedAt   time.Time
}
