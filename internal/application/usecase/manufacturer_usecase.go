package usecase

import (
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ManufacturerUseCase casos de uso CRUD para fabricantes.
type ManufacturerUseCase struct {
	repo repository.ManufacturerRepository
}

// NewManufacturerUseCase construye el caso de uso.
func NewManufacturerUseCase(repo repository.ManufacturerRepository) *ManufacturerUseCase {
	return &ManufacturerUseCase{repo: repo}
}

// CreateManufacturerInput datos para crear un fabricante.
type CreateManufacturerInput struct {
	CompanyName string
	Location    string
	Contact     string
	Email       string
}

// Create crea un fabricante.
func (uc *ManufacturerUseCase) Create(in CreateManufacturerInput) (*entity.Manufacturer, error) {
	if in.CompanyName == "" || in.Location == "" || in.Contact == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: company_name, location, contact y email son requeridos", domain.ErrInvalidInput)
	}
	now := time.Now()
	m := &entity.Manufacturer{
		CompanyName: in.CompanyName,
		Location:    in.Location,
		Contact:     in.Contact,
		Email:       in.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

// GetByID obtiene un fabricante por ID interno.
func (uc *ManufacturerUseCase) GetByID(id int64) (*entity.Manufacturer, error) {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: fabricante", domain.ErrNotFound)
	}
	return m, nil
}

// UpdateManufacturerInput campos opcionales a modificar.
type UpdateManufacturerInput struct {
	CompanyName *string
	Location    *string
	Contact     *string
	Email       *string
}

// Update modifica parcialmente un fabricante.
func (uc *ManufacturerUseCase) Update(id int64, in UpdateManufacturerInput) (*entity.Manufacturer, error) {
	m, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.CompanyName != nil {
		m.CompanyName = *in.CompanyName
	}
	if in.Location != nil {
		m.Location = *in.Location
	}
	if in.Contact != nil {
		m.Contact = *in.Contact
	}
	if in.Email != nil {
		m.Email = *in.Email
	}
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ManufacturerSearch filtros de listado; se aplica el primero no vacío en
// este orden: empresa, email, contacto, ubicación.
type ManufacturerSearch struct {
	CompanyName string
	Email       string
	Contact     string
	Location    string
}

// List lista fabricantes con filtros opcionales de búsqueda parcial.
func (uc *ManufacturerUseCase) List(search ManufacturerSearch, limit, offset int) ([]*entity.Manufacturer, error) {
	switch {
	case search.CompanyName != "":
		return uc.repo.SearchByCompanyName(search.CompanyName, limit, offset)
	case search.Email != "":
		return uc.repo.SearchByEmail(search.Email, limit, offset)
	case search.Contact != "":
		return uc.repo.SearchByContact(search.Contact, limit, offset)
	case search.Location != "":
		return uc.repo.SearchByLocation(search.Location, limit, offset)
	default:
		return uc.repo.List(limit, offset)
	}
}

// Delete elimina un fabricante. Si tiene productos asociados el constraint
// referencial lo impide y se devuelve conflicto.
func (uc *ManufacturerUseCase) Delete(id int64) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
