package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL.
// Puede operar sobre el pool o sobre una transacción según el Querier recibido.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de persistencia para inventario.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventorySelect = `
	SELECT i.inventory_id, i.product_id, i.warehouse_id, i.quantity,
	       p.name, w.name, i.created_at, i.updated_at
	FROM inventories i
	JOIN products p ON p.product_id = i.product_id
	JOIN warehouses w ON w.warehouse_id = i.warehouse_id`

// Create persiste un nuevo registro de inventario y asigna el ID generado.
// El índice único (producto, almacén) se traduce a domain.ErrDuplicate, de
// modo que dos altas concurrentes del mismo par fallan igual que la
// verificación previa del caso de uso. Las FK ausentes se traducen a
// domain.ErrNotFound.
func (r *InventoryRepo) Create(inv *entity.Inventory) error {
	query := `
		INSERT INTO inventories (product_id, warehouse_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING inventory_id`
	err := r.q.QueryRow(context.Background(), query,
		inv.ProductID, inv.WarehouseID, inv.Quantity, inv.CreatedAt, inv.UpdatedAt,
	).Scan(&inv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe inventario para ese producto en ese almacén", domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o almacén inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene un registro de inventario por ID; nil si no existe.
func (r *InventoryRepo) GetByID(id int64) (*entity.Inventory, error) {
	return r.getOne(inventorySelect+` WHERE i.inventory_id = $1`, id)
}

// GetForUpdate obtiene el registro bloqueando la fila base con FOR UPDATE.
// Solo tiene efecto dentro de una transacción; el lock se libera al terminar.
func (r *InventoryRepo) GetForUpdate(id int64) (*entity.Inventory, error) {
	return r.getOne(inventorySelect+` WHERE i.inventory_id = $1 FOR UPDATE OF i`, id)
}

// GetByProductAndWarehouse obtiene el registro del par (producto, almacén); nil si no existe.
func (r *InventoryRepo) GetByProductAndWarehouse(productID, warehouseID int64) (*entity.Inventory, error) {
	return r.getOne(inventorySelect+` WHERE i.product_id = $1 AND i.warehouse_id = $2`, productID, warehouseID)
}

// UpdateQuantity fija la cantidad absoluta del registro y refresca updated_at.
func (r *InventoryRepo) UpdateQuantity(id int64, quantity int64) error {
	query := `UPDATE inventories SET quantity = $2, updated_at = $3 WHERE inventory_id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, quantity, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el registro de inventario sin importar la cantidad restante.
func (r *InventoryRepo) Delete(id int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM inventories WHERE inventory_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista registros de inventario con paginación.
func (r *InventoryRepo) List(limit, offset int) ([]*entity.Inventory, error) {
	query := inventorySelect + ` ORDER BY i.created_at DESC LIMIT $1 OFFSET $2`
	return r.scanList(r.q.Query(context.Background(), query, limit, offset))
}

// ListByProduct lista el inventario de un producto en todos los almacenes.
func (r *InventoryRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.Inventory, error) {
	query := inventorySelect + `
		WHERE i.product_id = $1
		ORDER BY i.created_at DESC LIMIT $2 OFFSET $3`
	return r.scanList(r.q.Query(context.Background(), query, productID, limit, offset))
}

// ListByWarehouse lista el inventario de un almacén.
func (r *InventoryRepo) ListByWarehouse(warehouseID int64, limit, offset int) ([]*entity.Inventory, error) {
	query := inventorySelect + `
		WHERE i.warehouse_id = $1
		ORDER BY i.created_at DESC LIMIT $2 OFFSET $3`
	return r.scanList(r.q.Query(context.Background(), query, warehouseID, limit, offset))
}

// ListLowStock lista registros con cantidad menor o igual al umbral,
// ordenados de menor a mayor cantidad.
func (r *InventoryRepo) ListLowStock(threshold int64, limit, offset int) ([]*entity.Inventory, error) {
	query := inventorySelect + `
		WHERE i.quantity <= $1
		ORDER BY i.quantity ASC, i.inventory_id ASC LIMIT $2 OFFSET $3`
	return r.scanList(r.q.Query(context.Background(), query, threshold, limit, offset))
}

// TotalQuantityByProduct suma el stock de un producto en todos los almacenes.
// Un producto sin registros suma cero.
func (r *InventoryRepo) TotalQuantityByProduct(productID int64) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM inventories WHERE product_id = $1`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total quantity by product: %w", err)
	}
	return total, nil
}

func (r *InventoryRepo) getOne(query string, args ...any) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity,
		&inv.ProductName, &inv.WarehouseName, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

func (r *InventoryRepo) scanList(rows pgx.Rows, err error) ([]*entity.Inventory, error) {
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity,
			&inv.ProductName, &inv.WarehouseName, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
