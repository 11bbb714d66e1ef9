package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// InventoryRepository define el puerto de persistencia para registros de stock.
// Usado dentro de transacciones para garantizar consistencia; las lecturas
// incluyen nombres de producto y almacén (JOIN).
type InventoryRepository interface {
	// Create falla con domain.ErrDuplicate si ya existe registro para el par
	// (producto, almacén) y con domain.ErrNotFound si alguna referencia no existe.
	Create(inv *entity.Inventory) error
	GetByID(id int64) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id int64) (*entity.Inventory, error)
	GetByProductAndWarehouse(productID, warehouseID int64) (*entity.Inventory, error)
	// UpdateQuantity fija la cantidad y refresca updated_at.
	UpdateQuantity(id int64, quantity int64) error
	Delete(id int64) error
	List(limit, offset int) ([]*entity.Inventory, error)
	ListByProduct(productID int64, limit, offset int) ([]*entity.Inventory, error)
	ListByWarehouse(warehouseID int64, limit, offset int) ([]*entity.Inventory, error)
	// ListLowStock devuelve registros con cantidad <= umbral, de menor a mayor.
	ListLowStock(threshold int64, limit, offset int) ([]*entity.Inventory, error)
	// TotalQuantityByProduct suma el stock de un producto en todos los almacenes.
	TotalQuantityByProduct(productID int64) (int64, error)
}
