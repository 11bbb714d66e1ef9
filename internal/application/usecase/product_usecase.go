package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	repo             repository.ProductRepository
	manufacturerRepo repository.ManufacturerRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, manufacturerRepo repository.ManufacturerRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, manufacturerRepo: manufacturerRepo}
}

// CreateProductInput datos para crear un producto.
type CreateProductInput struct {
	Name           string
	Price          decimal.Decimal
	Description    string
	ManufacturerID int64
}

// Create crea un producto. El fabricante referenciado debe existir y la
// combinación (nombre, precio, fabricante) debe ser única.
func (uc *ProductUseCase) Create(in CreateProductInput) (*entity.Product, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	m, err := uc.manufacturerRepo.GetByID(in.ManufacturerID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: fabricante", domain.ErrNotFound)
	}

	now := time.Now()
	p := &entity.Product{
		Name:             in.Name,
		Price:            in.Price,
		Description:      in.Description,
		ManufacturerID:   in.ManufacturerID,
		ManufacturerName: m.CompanyName,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID obtiene un producto por ID interno.
func (uc *ProductUseCase) GetByID(id int64) (*entity.Product, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto", domain.ErrNotFound)
	}
	return p, nil
}

// UpdateProductInput campos opcionales a modificar.
type UpdateProductInput struct {
	Name           *string
	Price          *decimal.Decimal
	Description    *string
	ManufacturerID *int64
}

// Update modifica parcialmente un producto. Cambiar el fabricante exige que
// el nuevo exista.
func (uc *ProductUseCase) Update(id int64, in UpdateProductInput) (*entity.Product, error) {
	p, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.ManufacturerID != nil {
		m, err := uc.manufacturerRepo.GetByID(*in.ManufacturerID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("%w: fabricante", domain.ErrNotFound)
		}
		p.ManufacturerID = *in.ManufacturerID
		p.ManufacturerName = m.CompanyName
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ProductSearch filtros de listado; se aplica el primero no vacío en este
// orden: nombre, fabricante, rango de precio.
type ProductSearch struct {
	Name             string
	ManufacturerName string
	MinPrice         *decimal.Decimal
	MaxPrice         *decimal.Decimal
}

// List lista productos con filtros opcionales de búsqueda parcial.
func (uc *ProductUseCase) List(search ProductSearch, limit, offset int) ([]*entity.Product, error) {
	switch {
	case search.Name != "":
		return uc.repo.SearchByName(search.Name, limit, offset)
	case search.ManufacturerName != "":
		return uc.repo.SearchByManufacturerName(search.ManufacturerName, limit, offset)
	case search.MinPrice != nil && search.MaxPrice != nil:
		if search.MaxPrice.LessThan(*search.MinPrice) {
			return nil, fmt.Errorf("%w: rango de precios invertido", domain.ErrInvalidInput)
		}
		return uc.repo.SearchByPriceRange(*search.MinPrice, *search.MaxPrice, limit, offset)
	default:
		return uc.repo.List(limit, offset)
	}
}

// Delete elimina un producto. El inventario asociado lo impide (conflicto);
// nunca se elimina en cascada.
func (uc *ProductUseCase) Delete(id int64) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
