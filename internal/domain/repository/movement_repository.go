package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// MovementRepository define el puerto para el registro de auditoría de
// movimientos de stock. Create se invoca siempre dentro de la transacción
// que aplica la mutación correspondiente.
type MovementRepository interface {
	Create(m *entity.Movement) error
	ListByInventory(inventoryID int64, limit, offset int) ([]*entity.Movement, error)
}
