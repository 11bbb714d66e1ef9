package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos.
// Las lecturas incluyen el nombre del fabricante (JOIN).
type ProductRepository interface {
	// Create falla con domain.ErrDuplicate si ya existe un producto con el
	// mismo (nombre, precio, fabricante).
	Create(p *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// Update falla con domain.ErrDuplicate bajo la misma clave única que Create.
	Update(p *entity.Product) error
	// Delete falla con domain.ErrConflict si el producto tiene inventario asociado.
	Delete(id int64) error
	List(limit, offset int) ([]*entity.Product, error)
	// SearchByName busca por nombre de producto (coincidencia parcial).
	SearchByName(name string, limit, offset int) ([]*entity.Product, error)
	// SearchByManufacturerName busca por nombre del fabricante (coincidencia parcial).
	SearchByManufacturerName(companyName string, limit, offset int) ([]*entity.Product, error)
	SearchByPriceRange(min, max decimal.Decimal, limit, offset int) ([]*entity.Product, error)
}
