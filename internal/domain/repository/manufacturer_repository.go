package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ManufacturerRepository define el puerto de persistencia para fabricantes.
type ManufacturerRepository interface {
	Create(m *entity.Manufacturer) error
	GetByID(id int64) (*entity.Manufacturer, error)
	Update(m *entity.Manufacturer) error
	// Delete falla con domain.ErrConflict si el fabricante tiene productos asociados.
	Delete(id int64) error
	List(limit, offset int) ([]*entity.Manufacturer, error)
	// SearchByCompanyName busca por nombre de empresa (coincidencia parcial).
	SearchByCompanyName(companyName string, limit, offset int) ([]*entity.Manufacturer, error)
	// SearchByEmail busca por email (coincidencia parcial).
	SearchByEmail(email string, limit, offset int) ([]*entity.Manufacturer, error)
	// SearchByContact busca por contacto (coincidencia parcial).
	SearchByContact(contact string, limit, offset int) ([]*entity.Manufacturer, error)
	// SearchByLocation busca por ubicación (coincidencia parcial).
	SearchByLocation(location string, limit, offset int) ([]*entity.Manufacturer, error)
}
