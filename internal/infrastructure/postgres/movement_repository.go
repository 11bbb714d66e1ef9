package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de auditoría. Se invoca dentro de la misma
// transacción que la mutación de stock que lo origina.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO inventory_movements (movement_id, inventory_id, movement_type, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.InventoryID, m.Type, m.Quantity, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByInventory lista los movimientos de un registro de inventario, del más
// reciente al más antiguo.
func (r *MovementRepo) ListByInventory(inventoryID int64, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT movement_id, inventory_id, movement_type, quantity, created_at
		FROM inventory_movements
		WHERE inventory_id = $1
		ORDER BY created_at DESC, movement_id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, inventoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.InventoryID, &m.Type, &m.Quantity, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
