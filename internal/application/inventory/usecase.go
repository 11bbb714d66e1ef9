package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UseCase es el libro de inventario: aplica registro, entradas, salidas y
// bajas sobre registros de stock identificados por ID interno, garantizando
// cantidad >= 0 y unicidad por (producto, almacén).
//
// Toda mutación lectura-modificación-escritura corre dentro de TxRunner.Run
// con bloqueo de fila (SELECT FOR UPDATE): dos salidas concurrentes sobre el
// mismo registro nunca observan ambas stock suficiente.
type UseCase struct {
	txRunner      TxRunner
	invRepo       repository.InventoryRepository
	movRepo       repository.MovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		invRepo:       invRepo,
		movRepo:       movRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Register crea el registro de stock inicial para (producto, almacén).
// La cantidad inicial puede ser cero pero no negativa. El pre-chequeo de
// duplicado da un error amigable; la carrera entre el chequeo y el insert la
// resuelve el índice único, cuya violación llega ya clasificada como
// ErrDuplicate desde la capa de persistencia y se devuelve como conflicto.
func (uc *UseCase) Register(ctx context.Context, productID, warehouseID, quantity int64) (*entity.Inventory, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad inicial no puede ser negativa", domain.ErrInvalidInput)
	}

	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto", domain.ErrNotFound)
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%w: almacén", domain.ErrNotFound)
	}

	existing, err := uc.invRepo.GetByProductAndWarehouse(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe stock para ese producto en ese almacén", domain.ErrDuplicate)
	}

	now := time.Now()
	inv := &entity.Inventory{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.MovementRepository) error {
		if err := invRepo.Create(inv); err != nil {
			return err
		}
		if quantity > 0 {
			return movRepo.Create(&entity.Movement{
				ID:          uuid.New().String(),
				InventoryID: inv.ID,
				Type:        entity.MovementTypeEntrada,
				Quantity:    quantity,
				CreatedAt:   now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	inv.ProductName = product.Name
	inv.WarehouseName = warehouse.Name
	return inv, nil
}

// StockIn suma cantidad a un registro de stock. La cantidad debe ser positiva;
// no hay tope superior.
func (uc *UseCase) StockIn(ctx context.Context, id, amount int64) (*entity.Inventory, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: la cantidad de entrada debe ser positiva", domain.ErrInvalidInput)
	}
	var result *entity.Inventory
	err := uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.MovementRepository) error {
		inv, err := invRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("%w: stock", domain.ErrNotFound)
		}
		inv.Quantity += amount
		inv.UpdatedAt = time.Now()
		if err := invRepo.UpdateQuantity(inv.ID, inv.Quantity); err != nil {
			return err
		}
		if err := movRepo.Create(&entity.Movement{
			ID:          uuid.New().String(),
			InventoryID: inv.ID,
			Type:        entity.MovementTypeEntrada,
			Quantity:    amount,
			CreatedAt:   inv.UpdatedAt,
		}); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// StockOut resta cantidad de un registro de stock. Si la cantidad pedida
// supera la disponible devuelve ErrInsufficientStock con el stock actual y no
// aplica ningún decremento parcial.
func (uc *UseCase) StockOut(ctx context.Context, id, amount int64) (*entity.Inventory, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: la cantidad de salida debe ser positiva", domain.ErrInvalidInput)
	}
	var result *entity.Inventory
	err := uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.MovementRepository) error {
		inv, err := invRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("%w: stock", domain.ErrNotFound)
		}
		if inv.Quantity < amount {
			return fmt.Errorf("%w: stock actual %d", domain.ErrInsufficientStock, inv.Quantity)
		}
		inv.Quantity -= amount
		inv.UpdatedAt = time.Now()
		if err := invRepo.UpdateQuantity(inv.ID, inv.Quantity); err != nil {
			return err
		}
		if err := movRepo.Create(&entity.Movement{
			ID:          uuid.New().String(),
			InventoryID: inv.ID,
			Type:        entity.MovementTypeSalida,
			Quantity:    -amount,
			CreatedAt:   inv.UpdatedAt,
		}); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Remove da de baja un registro de stock, incondicional sobre la cantidad
// (semántica de write-off: cantidad distinta de cero también se elimina).
// Deja un movimiento BAJA por la cantidad restante para la auditoría.
func (uc *UseCase) Remove(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.MovementRepository) error {
		inv, err := invRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("%w: stock", domain.ErrNotFound)
		}
		if inv.Quantity > 0 {
			if err := movRepo.Create(&entity.Movement{
				ID:          uuid.New().String(),
				InventoryID: inv.ID,
				Type:        entity.MovementTypeBaja,
				Quantity:    -inv.Quantity,
				CreatedAt:   time.Now(),
			}); err != nil {
				return err
			}
		}
		return invRepo.Delete(inv.ID)
	})
}

// Get devuelve un registro de stock por ID. Solo lectura.
func (uc *UseCase) Get(ctx context.Context, id int64) (*entity.Inventory, error) {
	inv, err := uc.invRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: stock", domain.ErrNotFound)
	}
	return inv, nil
}

// List lista todos los registros de stock (paginado).
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.Inventory, error) {
	return uc.invRepo.List(limit, offset)
}

// ListByProduct lista el stock de un producto en todos los almacenes.
func (uc *UseCase) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.Inventory, error) {
	return uc.invRepo.ListByProduct(productID, limit, offset)
}

// ListByWarehouse lista el stock de un almacén para todos los productos.
func (uc *UseCase) ListByWarehouse(ctx context.Context, warehouseID int64, limit, offset int) ([]*entity.Inventory, error) {
	return uc.invRepo.ListByWarehouse(warehouseID, limit, offset)
}

// ListLowStock lista registros con cantidad <= umbral, de menor a mayor.
func (uc *UseCase) ListLowStock(ctx context.Context, threshold int64, limit, offset int) ([]*entity.Inventory, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: el umbral no puede ser negativo", domain.ErrInvalidInput)
	}
	return uc.invRepo.ListLowStock(threshold, limit, offset)
}

// TotalByProduct suma el stock de un producto en todos los almacenes.
// Devuelve ErrNotFound si el producto no existe.
func (uc *UseCase) TotalByProduct(ctx context.Context, productID int64) (int64, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, fmt.Errorf("%w: producto", domain.ErrNotFound)
	}
	return uc.invRepo.TotalQuantityByProduct(productID)
}

// Movements lista el historial de movimientos de un registro de stock.
func (uc *UseCase) Movements(ctx context.Context, id int64, limit, offset int) ([]*entity.Movement, error) {
	inv, err := uc.invRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: stock", domain.ErrNotFound)
	}
	return uc.movRepo.ListByInventory(id, limit, offset)
}
