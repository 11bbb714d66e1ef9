package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para almacenes.
type WarehouseRepository interface {
	Create(w *entity.Warehouse) error
	GetByID(id int64) (*entity.Warehouse, error)
	Update(w *entity.Warehouse) error
	// Delete falla con domain.ErrConflict si el almacén tiene inventario asociado.
	Delete(id int64) error
	List(limit, offset int) ([]*entity.Warehouse, error)
	// SearchByName busca por nombre (coincidencia parcial).
	SearchByName(name string, limit, offset int) ([]*entity.Warehouse, error)
	// SearchByLocation busca por ubicación (coincidencia parcial).
	SearchByLocation(location string, limit, offset int) ([]*entity.Warehouse, error)
}
