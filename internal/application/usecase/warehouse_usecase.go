package usecase

import (
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para almacenes.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// CreateWarehouseInput datos para crear un almacén.
type CreateWarehouseInput struct {
	Name     string
	Location string
	Contact  string
}

// Create crea un almacén.
func (uc *WarehouseUseCase) Create(in CreateWarehouseInput) (*entity.Warehouse, error) {
	if in.Name == "" || in.Location == "" {
		return nil, fmt.Errorf("%w: name y location son requeridos", domain.ErrInvalidInput)
	}
	now := time.Now()
	w := &entity.Warehouse{
		Name:      in.Name,
		Location:  in.Location,
		Contact:   in.Contact,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(w); err != nil {
		return nil, err
	}
	return w, nil
}

// GetByID obtiene un almacén por ID interno.
func (uc *WarehouseUseCase) GetByID(id int64) (*entity.Warehouse, error) {
	w, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: almacén", domain.ErrNotFound)
	}
	return w, nil
}

// UpdateWarehouseInput campos opcionales a modificar.
type UpdateWarehouseInput struct {
	Name     *string
	Location *string
	Contact  *string
}

// Update modifica parcialmente un almacén.
func (uc *WarehouseUseCase) Update(id int64, in UpdateWarehouseInput) (*entity.Warehouse, error) {
	w, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		w.Name = *in.Name
	}
	if in.Location != nil {
		w.Location = *in.Location
	}
	if in.Contact != nil {
		w.Contact = *in.Contact
	}
	w.UpdatedAt = time.Now()
	if err := uc.repo.Update(w); err != nil {
		return nil, err
	}
	return w, nil
}

// List lista almacenes; name o location no vacíos buscan por coincidencia parcial.
func (uc *WarehouseUseCase) List(name, location string, limit, offset int) ([]*entity.Warehouse, error) {
	switch {
	case name != "":
		return uc.repo.SearchByName(name, limit, offset)
	case location != "":
		return uc.repo.SearchByLocation(location, limit, offset)
	default:
		return uc.repo.List(limit, offset)
	}
}

// Delete elimina un almacén. El inventario asociado lo impide (conflicto).
func (uc *WarehouseUseCase) Delete(id int64) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
